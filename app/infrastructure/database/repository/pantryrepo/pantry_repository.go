package pantryrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pantrypal.app/pantry-api-gateway/app/domain/pantry"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/dbschema"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type PantryGormRepository struct {
	db *transaction.Database
}

var _ pantry.PantryRepository = (*PantryGormRepository)(nil)

func NewPantryGormRepository(db *transaction.Database) pantry.PantryRepository {
	return &PantryGormRepository{db: db}
}

func (r *PantryGormRepository) FindByUser(ctx context.Context, userID uint) ([]*pantry.PantryItem, error) {
	var rows []*dbschema.UserIngredient
	if err := r.db.GetTx(ctx).Where("user_id = ?", userID).Order("date_added DESC, food_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row *dbschema.UserIngredient) *pantry.PantryItem {
		return row.EtoD()
	}), nil
}

func (r *PantryGormRepository) ApplyDelta(ctx context.Context, userID uint, foodID string, delta int, at time.Time) error {
	row := &dbschema.UserIngredient{
		UserID:    userID,
		FoodID:    foodID,
		Quantity:  delta,
		DateAdded: at,
	}
	assignments := map[string]any{
		"quantity":   gorm.Expr("user_ingredient.quantity + excluded.quantity"),
		"updated_at": at,
	}
	if delta > 0 {
		assignments["date_added"] = gorm.Expr("excluded.date_added")
	}
	return r.db.GetTx(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "food_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(row).Error
}

func (r *PantryGormRepository) Remove(ctx context.Context, userID uint, foodID string) (int64, error) {
	result := r.db.GetTx(ctx).
		Where("user_id = ? AND food_id = ?", userID, foodID).
		Delete(&dbschema.UserIngredient{})
	return result.RowsAffected, result.Error
}

func (r *PantryGormRepository) PruneEmpty(ctx context.Context, userID uint) (int64, error) {
	result := r.db.GetTx(ctx).
		Where("user_id = ? AND quantity <= 0", userID).
		Delete(&dbschema.UserIngredient{})
	return result.RowsAffected, result.Error
}

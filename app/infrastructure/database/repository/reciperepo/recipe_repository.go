package reciperepo

import (
	"context"

	"gorm.io/gorm/clause"
	"pantrypal.app/pantry-api-gateway/app/domain/recipe"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/dbschema"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type RecipeGormRepository struct {
	db *transaction.Database
}

var _ recipe.RecipeRepository = (*RecipeGormRepository)(nil)

func NewRecipeGormRepository(db *transaction.Database) recipe.RecipeRepository {
	return &RecipeGormRepository{db: db}
}

func (r *RecipeGormRepository) FindByUser(ctx context.Context, userID uint) ([]*recipe.Recipe, error) {
	var rows []*dbschema.Recipe
	if err := r.db.GetTx(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row *dbschema.Recipe) *recipe.Recipe {
		return row.EtoD()
	}), nil
}

func (r *RecipeGormRepository) InsertIgnore(ctx context.Context, rec *recipe.Recipe) (bool, error) {
	model := dbschema.NewSchemaRecipe(rec)
	result := r.db.GetTx(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "uri"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *RecipeGormRepository) Delete(ctx context.Context, userID uint, uri string) (int64, error) {
	result := r.db.GetTx(ctx).
		Where("user_id = ? AND uri = ?", userID, uri).
		Delete(&dbschema.Recipe{})
	return result.RowsAffected, result.Error
}

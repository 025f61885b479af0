package ingredientrepo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	domain "pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/domain/query"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/dbschema"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type IngredientGormRepository struct {
	db *transaction.Database
}

var _ domain.IngredientRepository = (*IngredientGormRepository)(nil)

func NewIngredientGormRepository(db *transaction.Database) domain.IngredientRepository {
	return &IngredientGormRepository{db: db}
}

func (repo *IngredientGormRepository) FindByFilter(ctx context.Context, filter domain.IngredientFilter, p *query.Pagination) ([]*domain.Ingredient, error) {
	sql := repo.applyFilter(repo.db.GetTx(ctx), filter)
	if p != nil {
		if p.Limit != nil && *p.Limit > 0 {
			sql = sql.Limit(*p.Limit)
		}
		if p.Offset != nil && *p.Offset > 0 {
			sql = sql.Offset(*p.Offset)
		}
		if p.Order == "desc" {
			sql = sql.Order("name DESC")
		} else {
			sql = sql.Order("name ASC")
		}
	}
	var rows []*dbschema.Ingredient
	if err := sql.Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(item *dbschema.Ingredient) *domain.Ingredient {
		return item.EtoD()
	}), nil
}

func (repo *IngredientGormRepository) Count(ctx context.Context, filter domain.IngredientFilter) (int64, error) {
	var count int64
	err := repo.applyFilter(repo.db.GetTx(ctx).Model(&dbschema.Ingredient{}), filter).Count(&count).Error
	return count, err
}

func (repo *IngredientGormRepository) Search(ctx context.Context, term string, limit int) ([]*domain.Ingredient, error) {
	lowered := strings.ToLower(term)
	var rows []*dbschema.Ingredient
	err := repo.db.GetTx(ctx).
		Where("LOWER(name) LIKE ?", "%"+escapeLike(lowered)+"%").
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END, name ASC",
			Vars:               []any{escapeLike(lowered) + "%"},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return functional.Map(rows, func(item *dbschema.Ingredient) *domain.Ingredient {
		return item.EtoD()
	}), nil
}

func (repo *IngredientGormRepository) FindByFoodID(ctx context.Context, foodID string) (*domain.Ingredient, error) {
	var model dbschema.Ingredient
	if err := repo.db.GetTx(ctx).Where("food_id = ?", foodID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.EtoD(), nil
}

func (repo *IngredientGormRepository) Upsert(ctx context.Context, i *domain.Ingredient) error {
	model := dbschema.NewSchemaIngredient(i)
	return repo.db.GetTx(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "food_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "quantity_type", "expiration_days", "image_url", "quantity",
			"fat", "cholesterol", "sodium", "potassium", "carbohydrate", "protein", "calorie", "updated_at",
		}),
	}).Create(model).Error
}

func (repo *IngredientGormRepository) applyFilter(sql *gorm.DB, filter domain.IngredientFilter) *gorm.DB {
	if len(filter.FoodIDs) > 0 {
		sql = sql.Where("food_id IN ?", filter.FoodIDs)
	}
	if filter.Category != nil {
		sql = sql.Where("category = ?", *filter.Category)
	}
	if filter.NameContains != nil {
		sql = sql.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(*filter.NameContains))+"%")
	}
	return sql
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

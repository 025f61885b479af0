package categoryrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pantrypal.app/pantry-api-gateway/app/domain/category"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/dbschema"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type CategoryGormRepository struct {
	db *transaction.Database
}

var _ category.CategoryRepository = (*CategoryGormRepository)(nil)

func NewCategoryGormRepository(db *transaction.Database) category.CategoryRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) UpsertCategory(ctx context.Context, c *category.Category) error {
	return r.db.GetTx(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "updated_at"}),
	}).Create(dbschema.NewSchemaCategory(c)).Error
}

func (r *CategoryGormRepository) UpsertSubcategory(ctx context.Context, s *category.Subcategory) error {
	return r.db.GetTx(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"category_id", "updated_at"}),
	}).Create(&dbschema.Subcategory{Name: s.Name, CategoryID: s.CategoryID}).Error
}

func (r *CategoryGormRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	var rows []*dbschema.Category
	if err := r.db.GetTx(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row *dbschema.Category) *category.Category {
		return row.EtoD()
	}), nil
}

func (r *CategoryGormRepository) FindSubcategories(ctx context.Context, categoryIDs []int64) ([]*category.Subcategory, error) {
	var rows []*dbschema.Subcategory
	sql := r.db.GetTx(ctx)
	if len(categoryIDs) > 0 {
		sql = sql.Where("category_id IN ?", categoryIDs)
	}
	if err := sql.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return functional.Map(rows, func(row *dbschema.Subcategory) *category.Subcategory {
		return row.EtoD()
	}), nil
}

func (r *CategoryGormRepository) FindBySubcategory(ctx context.Context, name string) (*category.Category, error) {
	var model dbschema.Category
	err := r.db.GetTx(ctx).
		Joins("JOIN subcategory ON subcategory.category_id = category.id").
		Where("LOWER(subcategory.name) = LOWER(?)", name).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.EtoD(), nil
}

func (r *CategoryGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetTx(ctx).Model(&dbschema.Category{}).Count(&count).Error
	return count, err
}

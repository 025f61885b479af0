package dbschema

import (
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/category"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Category{}, Subcategory{})
}

// Category keeps the FatSecret food_category_id as its primary key.
type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	UpdatedAt   time.Time
}

type Subcategory struct {
	BaseModel
	Name       string `gorm:"type:varchar(255);not null;uniqueIndex"`
	CategoryID int64  `gorm:"not null;index"`
}

func NewSchemaCategory(c *category.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func (c *Category) EtoD() *category.Category {
	return &category.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func (s *Subcategory) EtoD() *category.Subcategory {
	return &category.Subcategory{
		Name:       s.Name,
		CategoryID: s.CategoryID,
	}
}

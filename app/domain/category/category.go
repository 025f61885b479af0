package category

import (
	"context"

	fatsecretclient "pantrypal.app/pantry-api-gateway/app/utils/httpclients/fatsecret"
)

type Category struct {
	ID            int64
	Name          string
	Description   string
	Subcategories []string
}

type Subcategory struct {
	Name       string
	CategoryID int64
}

type CategoryRepository interface {
	UpsertCategory(ctx context.Context, c *Category) error
	// UpsertSubcategory moves an existing subcategory to c.CategoryID.
	UpsertSubcategory(ctx context.Context, s *Subcategory) error
	FindAll(ctx context.Context) ([]*Category, error)
	FindSubcategories(ctx context.Context, categoryIDs []int64) ([]*Subcategory, error)
	// FindBySubcategory returns nil, nil when name is unknown.
	FindBySubcategory(ctx context.Context, name string) (*Category, error)
	Count(ctx context.Context) (int64, error)
}

type FoodCatalog interface {
	FoodCategories(ctx context.Context) ([]fatsecretclient.FoodCategory, error)
	FoodSubCategories(ctx context.Context, categoryID int64) ([]string, error)
	SearchFoodSubCategories(ctx context.Context, expression string) ([]string, error)
}

type SyncResult struct {
	Categories    int `json:"categories"`
	Subcategories int `json:"subcategories"`
}

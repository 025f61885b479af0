package recipe

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Recipe struct {
	UserID      uint
	URI         string
	Label       string
	Image       string
	URL         string
	Calories    decimal.Decimal
	TotalWeight decimal.Decimal
	CuisineType []string
	MealType    []string
	DishType    []string
	CreatedAt   time.Time
}

type RecipeRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]*Recipe, error)
	// InsertIgnore leaves an existing (user, uri) row untouched and reports
	// whether a row was written.
	InsertIgnore(ctx context.Context, r *Recipe) (bool, error)
	Delete(ctx context.Context, userID uint, uri string) (int64, error)
}

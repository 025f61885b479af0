package ingredient

import (
	"context"

	"github.com/shopspring/decimal"
	"pantrypal.app/pantry-api-gateway/app/domain/query"
)

type Ingredient struct {
	FoodID         string
	Name           string
	Category       string
	QuantityType   string
	ExpirationDays int
	ImageURL       string
	// Quantity is the reference amount the nutrition values refer to.
	Quantity     decimal.Decimal
	Fat          decimal.Decimal
	Cholesterol  decimal.Decimal
	Sodium       decimal.Decimal
	Potassium    decimal.Decimal
	Carbohydrate decimal.Decimal
	Protein      decimal.Decimal
	Calorie      decimal.Decimal
}

type IngredientFilter struct {
	FoodIDs  []string
	Category *string
	// NameContains is matched case-insensitively.
	NameContains *string
}

type IngredientRepository interface {
	FindByFilter(ctx context.Context, filter IngredientFilter, p *query.Pagination) ([]*Ingredient, error)
	Count(ctx context.Context, filter IngredientFilter) (int64, error)
	// Search returns at most limit rows whose name contains term, prefix
	// matches first.
	Search(ctx context.Context, term string, limit int) ([]*Ingredient, error)
	FindByFoodID(ctx context.Context, foodID string) (*Ingredient, error)
	Upsert(ctx context.Context, i *Ingredient) error
}

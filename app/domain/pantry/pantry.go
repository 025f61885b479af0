package pantry

import (
	"context"
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
)

type PantryItem struct {
	UserID     uint
	FoodID     string
	Quantity   int
	DateAdded  time.Time
	Ingredient *ingredient.Ingredient
}

// QuantityChange is one entry of a batch update. Zero removes the item,
// any other value is added to the stored quantity.
type QuantityChange struct {
	FoodID   string
	Quantity int
}

type BatchResult struct {
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}

type PantryRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]*PantryItem, error)
	// ApplyDelta inserts the row or adds delta to its quantity. date_added is
	// set to at for new rows and for positive deltas.
	ApplyDelta(ctx context.Context, userID uint, foodID string, delta int, at time.Time) error
	Remove(ctx context.Context, userID uint, foodID string) (int64, error)
	// PruneEmpty deletes rows of the user whose quantity dropped to zero or below.
	PruneEmpty(ctx context.Context, userID uint) (int64, error)
}

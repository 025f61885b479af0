package expiry

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrStoreUnavailable = errors.New("expiry: store unavailable")

// OwnershipRecord is one pantry row joined with the shelf life of its item.
type OwnershipRecord struct {
	UserID        uint
	FoodID        string
	Name          string
	Quantity      int
	AcquiredAt    time.Time
	ShelfLifeDays int
}

type ExpiringItem struct {
	UserID        uint      `json:"user_id"`
	FoodID        string    `json:"food_id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	AcquiredAt    time.Time `json:"acquired_at"`
	ShelfLifeDays int       `json:"shelf_life_days"`
	DaysElapsed   int       `json:"days_elapsed"`
	DaysLeft      int       `json:"days_left"`
}

type OwnershipFilter struct {
	UserID *uint
	// ExpiringAt lets the repository narrow rows to those whose window
	// contains this instant. Rows outside the window may still be returned.
	ExpiringAt *time.Time
}

type OwnershipRepository interface {
	FindOwnershipRecords(ctx context.Context, filter OwnershipFilter) ([]*OwnershipRecord, error)
}

// ElapsedDays is the number of whole days between acquiredAt and now,
// rounded down. Acquisition in the future yields a negative value.
func ElapsedDays(acquiredAt, now time.Time) int {
	return int(math.Floor(now.Sub(acquiredAt).Hours() / 24))
}

func DaysLeft(shelfLifeDays int, acquiredAt, now time.Time) int {
	return shelfLifeDays - ElapsedDays(acquiredAt, now)
}

// IsExpiringSoon reports 0 <= days_left <= 1. Items already past their shelf
// life are not expiring soon.
func IsExpiringSoon(daysLeft int) bool {
	return daysLeft >= 0 && daysLeft <= 1
}

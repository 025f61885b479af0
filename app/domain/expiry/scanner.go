package expiry

import (
	"context"
	"fmt"
	"time"
)

type Scanner struct {
	repo OwnershipRepository
}

func NewScanner(repo OwnershipRepository) *Scanner {
	return &Scanner{repo: repo}
}

// Scan returns the expiring items of every user. Users without expiring
// items have no key in the result.
func (s *Scanner) Scan(ctx context.Context, now time.Time) (map[uint][]ExpiringItem, error) {
	records, err := s.repo.FindOwnershipRecords(ctx, OwnershipFilter{ExpiringAt: &now})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	result := make(map[uint][]ExpiringItem)
	for _, item := range evaluate(records, now) {
		result[item.UserID] = append(result[item.UserID], item)
	}
	return result, nil
}

func (s *Scanner) ScanForUser(ctx context.Context, userID uint, now time.Time) ([]ExpiringItem, error) {
	records, err := s.repo.FindOwnershipRecords(ctx, OwnershipFilter{UserID: &userID, ExpiringAt: &now})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	items := make([]ExpiringItem, 0)
	for _, item := range evaluate(records, now) {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func evaluate(records []*OwnershipRecord, now time.Time) []ExpiringItem {
	items := make([]ExpiringItem, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		elapsed := ElapsedDays(r.AcquiredAt, now)
		left := r.ShelfLifeDays - elapsed
		if !IsExpiringSoon(left) {
			continue
		}
		items = append(items, ExpiringItem{
			UserID:        r.UserID,
			FoodID:        r.FoodID,
			Name:          r.Name,
			Quantity:      r.Quantity,
			AcquiredAt:    r.AcquiredAt,
			ShelfLifeDays: r.ShelfLifeDays,
			DaysElapsed:   elapsed,
			DaysLeft:      left,
		})
	}
	return items
}

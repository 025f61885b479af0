package expiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryOwnership struct {
	records []*OwnershipRecord
	err     error
	filters []OwnershipFilter
}

func (m *memoryOwnership) FindOwnershipRecords(_ context.Context, filter OwnershipFilter) ([]*OwnershipRecord, error) {
	m.filters = append(m.filters, filter)
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*OwnershipRecord, 0, len(m.records))
	for _, r := range m.records {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func TestExpiryBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		acquired time.Time
		left     int
		included bool
	}{
		{"four days ago", daysAgo(4), 1, true},
		{"five days ago", daysAgo(5), 0, true},
		{"six days ago", daysAgo(6), -1, false},
		{"three days ago", daysAgo(3), 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.left, DaysLeft(5, tc.acquired, now))
			assert.Equal(t, tc.included, IsExpiringSoon(DaysLeft(5, tc.acquired, now)))
		})
	}
}

func TestElapsedDaysFloorsPartialDays(t *testing.T) {
	assert.Equal(t, 0, ElapsedDays(now.Add(-23*time.Hour), now))
	assert.Equal(t, 1, ElapsedDays(now.Add(-25*time.Hour), now))
	assert.Equal(t, 4, ElapsedDays(daysAgo(5).Add(time.Minute), now))
	assert.Equal(t, -1, ElapsedDays(now.Add(time.Hour), now))
}

func TestShelfLifeZeroQualifiesImmediately(t *testing.T) {
	assert.True(t, IsExpiringSoon(DaysLeft(0, now, now)))
	assert.True(t, IsExpiringSoon(DaysLeft(0, now.Add(-12*time.Hour), now)))
	assert.False(t, IsExpiringSoon(DaysLeft(0, daysAgo(1), now)))
}

func TestScanGroupsByUser(t *testing.T) {
	repo := &memoryOwnership{records: []*OwnershipRecord{
		{UserID: 1, FoodID: "milk", Name: "Milk", Quantity: 1, AcquiredAt: daysAgo(4), ShelfLifeDays: 5},
		{UserID: 1, FoodID: "rice", Name: "Rice", Quantity: 2, AcquiredAt: daysAgo(1), ShelfLifeDays: 365},
		{UserID: 2, FoodID: "eggs", Name: "Eggs", Quantity: 12, AcquiredAt: daysAgo(3), ShelfLifeDays: 21},
		{UserID: 2, FoodID: "fish", Name: "Fish", Quantity: 1, AcquiredAt: daysAgo(6), ShelfLifeDays: 2},
	}}
	s := NewScanner(repo)

	result, err := s.Scan(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[1], 1)
	assert.Equal(t, "milk", result[1][0].FoodID)
	assert.Equal(t, 4, result[1][0].DaysElapsed)
	assert.Equal(t, 1, result[1][0].DaysLeft)
	_, hasB := result[2]
	assert.False(t, hasB)

	require.Len(t, repo.filters, 1)
	assert.Nil(t, repo.filters[0].UserID)
	assert.Equal(t, now, *repo.filters[0].ExpiringAt)
}

func TestScanKeepsRepositoryOrder(t *testing.T) {
	repo := &memoryOwnership{records: []*OwnershipRecord{
		{UserID: 3, FoodID: "b", AcquiredAt: daysAgo(5), ShelfLifeDays: 5},
		{UserID: 3, FoodID: "a", AcquiredAt: daysAgo(0), ShelfLifeDays: 1},
	}}

	result, err := NewScanner(repo).Scan(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, result[3], 2)
	assert.Equal(t, "b", result[3][0].FoodID)
	assert.Equal(t, "a", result[3][1].FoodID)
}

func TestScanForUserIsScoped(t *testing.T) {
	repo := &memoryOwnership{records: []*OwnershipRecord{
		{UserID: 1, FoodID: "milk", AcquiredAt: daysAgo(5), ShelfLifeDays: 5},
		{UserID: 2, FoodID: "eggs", AcquiredAt: daysAgo(5), ShelfLifeDays: 5},
	}}

	items, err := NewScanner(repo).ScanForUser(context.Background(), 2, now)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].UserID)
	assert.Equal(t, uint(2), *repo.filters[0].UserID)
}

func TestScanForUserWithNothingExpiring(t *testing.T) {
	repo := &memoryOwnership{}

	items, err := NewScanner(repo).ScanForUser(context.Background(), 9, now)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestScanSurfacesStoreErrors(t *testing.T) {
	repo := &memoryOwnership{err: errors.New("dial tcp: connection refused")}
	s := NewScanner(repo)

	_, err := s.Scan(context.Background(), now)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = s.ScanForUser(context.Background(), 1, now)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

package report

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantrypal.app/pantry-api-gateway/app/domain/common"
)

type memoryRepo struct {
	rows []*Report
}

func (m *memoryRepo) Create(_ context.Context, r *Report) error {
	r.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, r)
	return nil
}

func (m *memoryRepo) FindByUser(_ context.Context, userID uint) ([]*Report, error) {
	var out []*Report
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func TestAddAndListNewestFirst(t *testing.T) {
	s := NewReportService(&memoryRepo{})
	clock := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	first, err := s.Add(ctx, 1, " Wrong expiry ", "Milk shows 5 days")
	require.NoError(t, err)
	assert.Equal(t, "Wrong expiry", first.Subject)

	clock = clock.Add(time.Hour)
	_, err = s.Add(ctx, 1, "Crash", "App crashed on scan")
	require.NoError(t, err)
	_, err = s.Add(ctx, 2, "Other user", "hidden")
	require.NoError(t, err)

	reports, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "Crash", reports[0].Subject)
	assert.Equal(t, "Wrong expiry", reports[1].Subject)
}

func TestAddValidation(t *testing.T) {
	s := NewReportService(&memoryRepo{})

	_, err := s.Add(context.Background(), 1, "", "desc")
	assert.True(t, common.IsValidation(err))
	_, err = s.Add(context.Background(), 1, "subject", "   ")
	assert.True(t, common.IsValidation(err))
	_, err = s.Add(context.Background(), 1, strings.Repeat("s", 256), "desc")
	assert.True(t, common.IsValidation(err))
}

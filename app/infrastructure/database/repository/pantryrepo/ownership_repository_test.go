package pantryrepo

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pantrypal.app/pantry-api-gateway/app/domain/expiry"
)

func inWindow(at, acquiredAt time.Time, shelfLifeDays int) bool {
	after, notAfter := acquisitionWindow(at, shelfLifeDays)
	return acquiredAt.After(after) && !acquiredAt.After(notAfter)
}

func TestAcquisitionWindowMatchesScannerPredicate(t *testing.T) {
	at := time.Date(2025, 3, 30, 9, 0, 0, 0, time.UTC)
	for _, shelf := range []int{0, 1, 2, 5, 7, 30} {
		// every 30 minutes from two days in the future to shelf + 3 days ago
		for step := -96; step <= (shelf+3)*48; step++ {
			acquiredAt := at.Add(-time.Duration(step) * 30 * time.Minute)
			want := expiry.IsExpiringSoon(expiry.DaysLeft(shelf, acquiredAt, at))
			assert.Equal(t, want, inWindow(at, acquiredAt, shelf),
				"shelf %d acquired %s before", shelf, at.Sub(acquiredAt))
		}
	}
}

func TestAcquisitionWindowBoundaries(t *testing.T) {
	at := time.Date(2025, 3, 30, 9, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	cases := []struct {
		shelf   int
		elapsed time.Duration
		want    bool
	}{
		// shelf 5: elapsed days 4 and 5 qualify, 6 does not
		{5, 4*day - time.Second, false},
		{5, 4 * day, true},
		{5, 5*day + 23*time.Hour, true},
		{5, 6*day - time.Second, true},
		{5, 6 * day, false},
		// shelf 0: qualifies from acquisition until a full day has passed
		{0, 0, true},
		{0, day - time.Second, true},
		{0, day, false},
		{0, -time.Hour, true},
		{0, -day - time.Second, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("shelf %d elapsed %s", tc.shelf, tc.elapsed), func(t *testing.T) {
			acquiredAt := at.Add(-tc.elapsed)
			assert.Equal(t, tc.want, inWindow(at, acquiredAt, tc.shelf))
			assert.Equal(t, tc.want, expiry.IsExpiringSoon(expiry.DaysLeft(tc.shelf, acquiredAt, at)))
		})
	}
}

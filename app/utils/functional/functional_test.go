package functional

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByKeepsOrder(t *testing.T) {
	type row struct {
		owner uint
		name  string
	}
	rows := []row{{1, "milk"}, {2, "eggs"}, {1, "bread"}}

	grouped := GroupBy(rows, func(r row) uint { return r.owner })

	assert.Len(t, grouped, 2)
	assert.Equal(t, []row{{1, "milk"}, {1, "bread"}}, grouped[1])
	assert.Equal(t, []row{{2, "eggs"}}, grouped[2])

	keys := GetMapKeys(grouped)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	assert.Equal(t, []uint{1, 2}, keys)
}

func TestFilterAndDistinct(t *testing.T) {
	evens := Filter([]int{1, 2, 3, 4, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 4}, evens)
	assert.Equal(t, []int{2, 4}, Distinct(evens))
	assert.Empty(t, Filter([]int{}, func(int) bool { return true }))
}

package pantry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantrypal.app/pantry-api-gateway/app/domain/common"
	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/domain/query"
)

type catalogRepo struct {
	items map[string]*ingredient.Ingredient
}

func (c *catalogRepo) FindByFilter(_ context.Context, filter ingredient.IngredientFilter, _ *query.Pagination) ([]*ingredient.Ingredient, error) {
	var out []*ingredient.Ingredient
	for _, id := range filter.FoodIDs {
		if i, ok := c.items[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (c *catalogRepo) Count(context.Context, ingredient.IngredientFilter) (int64, error) {
	return int64(len(c.items)), nil
}

func (c *catalogRepo) Search(context.Context, string, int) ([]*ingredient.Ingredient, error) {
	return nil, nil
}

func (c *catalogRepo) FindByFoodID(_ context.Context, id string) (*ingredient.Ingredient, error) {
	return c.items[id], nil
}

func (c *catalogRepo) Upsert(context.Context, *ingredient.Ingredient) error { return nil }

type rowKey struct {
	user uint
	food string
}

type memoryPantry struct {
	mu   sync.Mutex
	rows map[rowKey]*PantryItem
}

func (m *memoryPantry) FindByUser(_ context.Context, userID uint) ([]*PantryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*PantryItem
	for k, v := range m.rows {
		if k.user == userID {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *memoryPantry) ApplyDelta(_ context.Context, userID uint, foodID string, delta int, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := rowKey{userID, foodID}
	row, ok := m.rows[k]
	if !ok {
		m.rows[k] = &PantryItem{UserID: userID, FoodID: foodID, Quantity: delta, DateAdded: at}
		return nil
	}
	row.Quantity += delta
	if delta > 0 {
		row.DateAdded = at
	}
	return nil
}

func (m *memoryPantry) Remove(_ context.Context, userID uint, foodID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := rowKey{userID, foodID}
	if _, ok := m.rows[k]; !ok {
		return 0, nil
	}
	delete(m.rows, k)
	return 1, nil
}

func (m *memoryPantry) PruneEmpty(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, v := range m.rows {
		if k.user == userID && v.Quantity <= 0 {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

var (
	monday  = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	tuesday = monday.Add(24 * time.Hour)
)

func newService(rows map[rowKey]*PantryItem) (*PantryService, *memoryPantry) {
	catalog := &catalogRepo{items: map[string]*ingredient.Ingredient{
		"milk":  {FoodID: "milk", Name: "Milk", ExpirationDays: 5},
		"eggs":  {FoodID: "eggs", Name: "Eggs", ExpirationDays: 21},
		"bread": {FoodID: "bread", Name: "Bread", ExpirationDays: 4},
	}}
	if rows == nil {
		rows = map[rowKey]*PantryItem{}
	}
	repo := &memoryPantry{rows: rows}
	s := NewPantryService(repo, ingredient.NewIngredientService(catalog))
	s.now = func() time.Time { return tuesday }
	return s, repo
}

func TestUpdateBatchAddsAndRemoves(t *testing.T) {
	s, repo := newService(map[rowKey]*PantryItem{
		{1, "milk"}:  {UserID: 1, FoodID: "milk", Quantity: 1, DateAdded: monday},
		{1, "bread"}: {UserID: 1, FoodID: "bread", Quantity: 2, DateAdded: monday},
	})

	result, err := s.UpdateBatch(context.Background(), 1, []QuantityChange{
		{FoodID: "milk", Quantity: 2},
		{FoodID: "eggs", Quantity: 12},
		{FoodID: "bread", Quantity: 0},
	})

	require.NoError(t, err)
	assert.Equal(t, &BatchResult{Updated: 2, Removed: 1}, result)
	assert.Equal(t, 3, repo.rows[rowKey{1, "milk"}].Quantity)
	assert.Equal(t, tuesday, repo.rows[rowKey{1, "milk"}].DateAdded)
	assert.Equal(t, 12, repo.rows[rowKey{1, "eggs"}].Quantity)
	_, hasBread := repo.rows[rowKey{1, "bread"}]
	assert.False(t, hasBread)
}

func TestUpdateBatchDecrementKeepsDateAndPrunes(t *testing.T) {
	s, repo := newService(map[rowKey]*PantryItem{
		{1, "milk"}: {UserID: 1, FoodID: "milk", Quantity: 3, DateAdded: monday},
		{1, "eggs"}: {UserID: 1, FoodID: "eggs", Quantity: 2, DateAdded: monday},
	})

	result, err := s.UpdateBatch(context.Background(), 1, []QuantityChange{
		{FoodID: "milk", Quantity: -1},
		{FoodID: "eggs", Quantity: -5},
	})

	require.NoError(t, err)
	assert.Equal(t, &BatchResult{Updated: 2, Removed: 1}, result)
	assert.Equal(t, 2, repo.rows[rowKey{1, "milk"}].Quantity)
	assert.Equal(t, monday, repo.rows[rowKey{1, "milk"}].DateAdded)
	_, hasEggs := repo.rows[rowKey{1, "eggs"}]
	assert.False(t, hasEggs)
}

func TestUpdateBatchValidation(t *testing.T) {
	s, repo := newService(nil)

	_, err := s.UpdateBatch(context.Background(), 1, nil)
	assert.True(t, common.IsValidation(err))

	_, err = s.UpdateBatch(context.Background(), 1, []QuantityChange{{FoodID: " ", Quantity: 1}})
	assert.True(t, common.IsValidation(err))

	_, err = s.UpdateBatch(context.Background(), 1, []QuantityChange{
		{FoodID: "milk", Quantity: 1},
		{FoodID: "caviar", Quantity: 1},
		{FoodID: "truffle", Quantity: 2},
		{FoodID: "caviar", Quantity: 1},
	})
	assert.True(t, common.IsValidation(err))
	assert.Contains(t, err.Error(), "unknown food id caviar, truffle")
	assert.Empty(t, repo.rows)
}

func TestUpdateBatchIsScopedToUser(t *testing.T) {
	s, repo := newService(map[rowKey]*PantryItem{
		{2, "milk"}: {UserID: 2, FoodID: "milk", Quantity: 0, DateAdded: monday},
	})

	_, err := s.UpdateBatch(context.Background(), 1, []QuantityChange{{FoodID: "milk", Quantity: 1}})

	require.NoError(t, err)
	assert.Len(t, repo.rows, 2)
	items, err := s.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestListAttachesCatalogEntries(t *testing.T) {
	s, _ := newService(map[rowKey]*PantryItem{
		{1, "eggs"}: {UserID: 1, FoodID: "eggs", Quantity: 12, DateAdded: monday},
		{1, "gone"}: {UserID: 1, FoodID: "gone", Quantity: 1, DateAdded: monday},
	})

	items, err := s.List(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, items, 2)
	byID := map[string]*PantryItem{}
	for _, item := range items {
		byID[item.FoodID] = item
	}
	require.NotNil(t, byID["eggs"].Ingredient)
	assert.Equal(t, "Eggs", byID["eggs"].Ingredient.Name)
	assert.Nil(t, byID["gone"].Ingredient)
}

func TestListEmptyPantry(t *testing.T) {
	s, _ := newService(nil)

	items, err := s.List(context.Background(), 7)

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

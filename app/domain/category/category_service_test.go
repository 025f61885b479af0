package category

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantrypal.app/pantry-api-gateway/app/domain/common"
	fatsecretclient "pantrypal.app/pantry-api-gateway/app/utils/httpclients/fatsecret"
)

type memoryRepo struct {
	mu         sync.Mutex
	categories map[int64]*Category
	subs       map[string]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{categories: map[int64]*Category{}, subs: map[string]int64{}}
}

func (m *memoryRepo) UpsertCategory(_ context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *c
	m.categories[c.ID] = &clone
	return nil
}

func (m *memoryRepo) UpsertSubcategory(_ context.Context, s *Subcategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[s.Name] = s.CategoryID
	return nil
}

func (m *memoryRepo) FindAll(context.Context) ([]*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Category, 0, len(m.categories))
	for _, c := range m.categories {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) FindSubcategories(_ context.Context, ids []int64) ([]*Subcategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Subcategory
	for name, id := range m.subs {
		for _, want := range ids {
			if id == want {
				out = append(out, &Subcategory{Name: name, CategoryID: id})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryRepo) FindBySubcategory(_ context.Context, name string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.subs[name]
	if !ok {
		return nil, nil
	}
	clone := *m.categories[id]
	return &clone, nil
}

func (m *memoryRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.categories)), nil
}

type fakeCatalog struct {
	categories []fatsecretclient.FoodCategory
	subs       map[int64][]string
	subErr     map[int64]error
	search     []string
}

func (f *fakeCatalog) FoodCategories(context.Context) ([]fatsecretclient.FoodCategory, error) {
	return f.categories, nil
}

func (f *fakeCatalog) FoodSubCategories(_ context.Context, id int64) ([]string, error) {
	if err := f.subErr[id]; err != nil {
		return nil, err
	}
	return f.subs[id], nil
}

func (f *fakeCatalog) SearchFoodSubCategories(context.Context, string) ([]string, error) {
	return f.search, nil
}

type recordingLocker struct {
	names []string
	busy  bool
}

func (l *recordingLocker) WithLock(ctx context.Context, name string, _ time.Duration, fn func(ctx context.Context) error) error {
	l.names = append(l.names, name)
	if l.busy {
		return errors.New("lock held")
	}
	return fn(ctx)
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{
		categories: []fatsecretclient.FoodCategory{
			{ID: 1, Name: "Dairy", Description: "Milk products"},
			{ID: 2, Name: "Fruit"},
			{ID: 3, Name: "Seafood"},
		},
		subs: map[int64][]string{
			1: {"Milk", "Cheese", ""},
			2: {"Apples"},
		},
		subErr: map[int64]error{3: errors.New("timeout")},
	}
}

func TestSyncFromFatSecret(t *testing.T) {
	repo := newMemoryRepo()
	locker := &recordingLocker{}
	s := NewCategoryServiceWithCatalog(repo, newCatalog(), locker)

	result, err := s.SyncFromFatSecret(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &SyncResult{Categories: 3, Subcategories: 3}, result)
	assert.Equal(t, []string{"v1:lock:category-sync"}, locker.names)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Cheese", "Milk"}, list[0].Subcategories)
	assert.Equal(t, []string{"Apples"}, list[1].Subcategories)
	assert.Empty(t, list[2].Subcategories)
}

func TestSyncSkippedWhenLockHeld(t *testing.T) {
	repo := newMemoryRepo()
	s := NewCategoryServiceWithCatalog(repo, newCatalog(), &recordingLocker{busy: true})

	_, err := s.SyncFromFatSecret(context.Background())

	assert.Error(t, err)
	empty, err := s.IsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestClassify(t *testing.T) {
	repo := newMemoryRepo()
	catalog := newCatalog()
	s := NewCategoryServiceWithCatalog(repo, catalog, nil)
	_, err := s.SyncFromFatSecret(context.Background())
	require.NoError(t, err)

	catalog.search = []string{"Dairy Snacks", "Cheese"}
	c, err := s.Classify(context.Background(), "cheddar")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Dairy", c.Name)

	catalog.search = nil
	c, err = s.Classify(context.Background(), "unobtainium")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = s.Classify(context.Background(), " ")
	assert.True(t, common.IsValidation(err))
}

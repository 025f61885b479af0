// Package routetest builds an authenticated gin engine backed by in-memory
// stores for route tests.
package routetest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/identity"
	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/domain/query"
	"pantrypal.app/pantry-api-gateway/app/domain/user"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
)

const (
	// KnownToken belongs to a registered user.
	KnownToken = "token-known"
	// NewToken verifies but has no user yet.
	NewToken = "token-new"
)

type Fixture struct {
	Users     *user.UserService
	Auth      *auth.AuthService
	Store     *Store
	KnownUser *user.User
}

func NewFixture(t testing.TB) *Fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	expiry := time.Now().Add(time.Hour)
	verifier := Verifier{
		KnownToken: {Subject: "fb-known", Email: "known@example.com", Expiry: expiry},
		NewToken:   {Subject: "fb-new", Email: "new@example.com", Expiry: expiry},
	}
	users := user.NewServiceWithSecret(NewUserRepo(), "")
	known, _, err := users.FindOrCreate(context.Background(), "fb-known", "known@example.com")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	store := &Store{values: map[string]string{}}
	resolver := identity.NewResolverWithClock(store, verifier, users, identity.DefaultMaxCacheTTL, time.Now)
	return &Fixture{
		Users:     users,
		Auth:      auth.NewAuthService(resolver, users),
		Store:     store,
		KnownUser: known,
	}
}

// Do sends body as JSON when it is not nil. An empty token sends no
// Authorization header.
func Do(t testing.TB, handler http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func Decode[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

type Verifier map[string]*identity.VerifiedIdentity

func (v Verifier) Verify(_ context.Context, credential string) (*identity.VerifiedIdentity, error) {
	if id, ok := v[credential]; ok {
		return id, nil
	}
	return nil, identity.ErrInvalidCredential
}

type Store struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

type UserRepo struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[uint]*user.User)}
}

func (m *UserRepo) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	row := *u
	row.ID = m.nextID
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	m.byID[row.ID] = &row
	*u = row
	return nil
}

func (m *UserRepo) Update(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *u
	m.byID[u.ID] = &row
	return nil
}

func (m *UserRepo) FindFirst(_ context.Context, filter user.UserFilter) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.byID {
		if filter.FirebaseUID != nil && entry.FirebaseUID != *filter.FirebaseUID {
			continue
		}
		if filter.PublicID != nil && entry.PublicID != *filter.PublicID {
			continue
		}
		if filter.Email != nil && !strings.EqualFold(entry.Email, *filter.Email) {
			continue
		}
		row := *entry
		return &row, nil
	}
	return nil, nil
}

func (m *UserRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	row := *entry
	return &row, nil
}

// Catalog is an ingredient repository ordered by name.
type Catalog struct {
	mu    sync.Mutex
	items map[string]*ingredient.Ingredient
}

func NewCatalog(items ...*ingredient.Ingredient) *Catalog {
	c := &Catalog{items: map[string]*ingredient.Ingredient{}}
	for _, i := range items {
		c.items[i.FoodID] = i
	}
	return c
}

func (c *Catalog) sorted() []*ingredient.Ingredient {
	out := make([]*ingredient.Ingredient, 0, len(c.items))
	for _, i := range c.items {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

func (c *Catalog) FindByFilter(_ context.Context, filter ingredient.IngredientFilter, p *query.Pagination) ([]*ingredient.Ingredient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*ingredient.Ingredient
	for _, i := range c.sorted() {
		if len(filter.FoodIDs) > 0 && !contains(filter.FoodIDs, i.FoodID) {
			continue
		}
		out = append(out, i)
	}
	if p != nil {
		if p.Offset != nil && *p.Offset < len(out) {
			out = out[*p.Offset:]
		} else if p.Offset != nil {
			out = nil
		}
		if p.Limit != nil && *p.Limit < len(out) {
			out = out[:*p.Limit]
		}
	}
	return out, nil
}

func (c *Catalog) Count(_ context.Context, _ ingredient.IngredientFilter) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items)), nil
}

func (c *Catalog) Search(_ context.Context, term string, limit int) ([]*ingredient.Ingredient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	term = strings.ToLower(term)
	var prefix, rest []*ingredient.Ingredient
	for _, i := range c.sorted() {
		name := strings.ToLower(i.Name)
		switch {
		case strings.HasPrefix(name, term):
			prefix = append(prefix, i)
		case strings.Contains(name, term):
			rest = append(rest, i)
		}
	}
	out := append(prefix, rest...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Catalog) FindByFoodID(_ context.Context, foodID string) (*ingredient.Ingredient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[foodID], nil
}

func (c *Catalog) Upsert(_ context.Context, i *ingredient.Ingredient) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[i.FoodID] = i
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

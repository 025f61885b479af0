package auth_test

import (
	context "context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/identity"
	"pantrypal.app/pantry-api-gateway/app/domain/user"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
)

type memoryUserRepo struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*user.User
	fail   error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byID: make(map[uint]*user.User)}
}

func cloneUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (m *memoryUserRepo) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	copy := cloneUser(u)
	copy.ID = m.nextID
	m.byID[copy.ID] = copy
	*u = *cloneUser(copy)
	return nil
}

func (m *memoryUserRepo) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = cloneUser(u)
	return nil
}

func (m *memoryUserRepo) FindFirst(ctx context.Context, filter user.UserFilter) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, entry := range m.byID {
		if filter.FirebaseUID != nil && entry.FirebaseUID != *filter.FirebaseUID {
			continue
		}
		return cloneUser(entry), nil
	}
	return nil, nil
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	return cloneUser(m.byID[id]), nil
}

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type tokenVerifier map[string]*identity.VerifiedIdentity

func (v tokenVerifier) Verify(_ context.Context, credential string) (*identity.VerifiedIdentity, error) {
	if credential == "token-keys-down" {
		return nil, errors.New("fetching keys: dial tcp: connection refused")
	}
	if id, ok := v[credential]; ok {
		return id, nil
	}
	return nil, identity.ErrInvalidCredential
}

type fixture struct {
	repo   *memoryUserRepo
	users  *user.UserService
	auth   *auth.AuthService
	store  *memoryStore
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	expiry := time.Now().Add(time.Hour)
	verifier := tokenVerifier{
		"token-known":   {Subject: "fb-known", Email: "known@example.com", Expiry: expiry},
		"token-unknown": {Subject: "fb-unknown", Email: "new@example.com", Expiry: expiry},
	}
	repo := newMemoryUserRepo()
	users := user.NewServiceWithSecret(repo, "")
	if _, _, err := users.FindOrCreate(context.Background(), "fb-known", "known@example.com"); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	store := &memoryStore{values: map[string]string{}}
	resolver := identity.NewResolverWithClock(store, verifier, users, identity.DefaultMaxCacheTTL, time.Now)
	authService := auth.NewAuthService(resolver, users)

	router := gin.New()
	router.GET("/me", authService.ResolvedUserMiddleware(), authService.RegisteredUserMiddleware(), func(c *gin.Context) {
		u, ok := auth.GetUserFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, u.FirebaseUID)
	})
	router.POST("/register", authService.VerifiedIdentityMiddleware(), func(c *gin.Context) {
		verified, ok := auth.GetVerifiedIdentityFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, verified.Subject)
	})
	return &fixture{repo: repo, users: users, auth: authService, store: store, router: router}
}

func (f *fixture) do(method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestResolvedUserMiddleware(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/me", "Bearer token-known")
	if rec.Code != http.StatusOK || rec.Body.String() != "fb-known" {
		t.Fatalf("expected 200 fb-known, got %d %s", rec.Code, rec.Body.String())
	}
	if len(f.store.values) != 1 {
		t.Fatalf("expected the credential to be cached, got %d entries", len(f.store.values))
	}
}

func TestResolvedUserMiddlewareStatusMapping(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer token-forged", http.StatusUnauthorized},
		{"Bearer token-unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := f.do(http.MethodGet, "/me", tc.header)
		if rec.Code != tc.status {
			t.Fatalf("header %q: expected %d, got %d", tc.header, tc.status, rec.Code)
		}
	}
}

func TestResolvedUserMiddlewareStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.repo.fail = errors.New("too many connections")

	rec := f.do(http.MethodGet, "/me", "Bearer token-known")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMiddlewaresReportVerifierOutageAsRetryable(t *testing.T) {
	f := newFixture(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/me"},
		{http.MethodPost, "/register"},
	} {
		rec := f.do(route.method, route.path, "Bearer token-keys-down")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s %s: expected 503, got %d", route.method, route.path, rec.Code)
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Fatalf("%s %s: expected a Retry-After header", route.method, route.path)
		}
	}
	if len(f.store.values) != 0 {
		t.Fatalf("expected nothing cached, got %d entries", len(f.store.values))
	}
}

func TestVerifiedIdentityMiddlewareAllowsUnregisteredUsers(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/register", "Bearer token-unknown")
	if rec.Code != http.StatusOK || rec.Body.String() != "fb-unknown" {
		t.Fatalf("expected 200 fb-unknown, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := f.do(http.MethodPost, "/register", "Bearer nope"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogoutInvalidatesCachedCredential(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(http.MethodGet, "/me", "Bearer token-known"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := f.auth.Logout(context.Background(), "token-known"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(f.store.values) != 0 {
		t.Fatalf("expected empty cache after logout, got %d entries", len(f.store.values))
	}
}

func TestIdentityErrorStatus(t *testing.T) {
	cases := map[error]int{
		identity.ErrInvalidCredential:     http.StatusUnauthorized,
		identity.ErrExpiredCredential:     http.StatusUnauthorized,
		identity.ErrUserNotFound:          http.StatusNotFound,
		identity.ErrStoreUnavailable:      http.StatusServiceUnavailable,
		identity.ErrVerifierUnavailable:   http.StatusServiceUnavailable,
		identity.ErrMalformedVerification: http.StatusInternalServerError,
	}
	for err, status := range cases {
		if got := auth.IdentityErrorStatus(err); got != status {
			t.Fatalf("%v: expected %d, got %d", err, status, got)
		}
	}
}

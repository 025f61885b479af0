package user

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu        sync.Mutex
	nextID    uint
	byID      map[uint]*User
	createErr error
	// raceUID is inserted behind the caller's back on the next Create.
	raceUID string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[uint]*User{}}
}

func (m *memoryRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceUID != "" {
		m.nextID++
		m.byID[m.nextID] = &User{ID: m.nextID, FirebaseUID: m.raceUID}
		m.raceUID = ""
		return ErrDuplicateUser
	}
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	u.ID = m.nextID
	clone := *u
	m.byID[u.ID] = &clone
	return nil
}

func (m *memoryRepo) Update(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *u
	m.byID[u.ID] = &clone
	return nil
}

func (m *memoryRepo) FindFirst(_ context.Context, filter UserFilter) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if filter.FirebaseUID != nil && u.FirebaseUID != *filter.FirebaseUID {
			continue
		}
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id uint) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func TestFindOrCreateIsIdempotent(t *testing.T) {
	s := NewServiceWithSecret(newMemoryRepo(), "")
	ctx := context.Background()

	first, created, err := s.FindOrCreate(ctx, "fb-1", "ana@example.com")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.PublicID)

	second, created, err := s.FindOrCreate(ctx, "fb-1", "ana@example.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestFindOrCreateRecoversFromDuplicateRace(t *testing.T) {
	repo := newMemoryRepo()
	repo.raceUID = "fb-2"
	s := NewServiceWithSecret(repo, "")

	u, created, err := s.FindOrCreate(context.Background(), "fb-2", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "fb-2", u.FirebaseUID)
}

func TestFindOrCreateRequiresUID(t *testing.T) {
	s := NewServiceWithSecret(newMemoryRepo(), "")
	_, _, err := s.FindOrCreate(context.Background(), "  ", "x@example.com")
	assert.Error(t, err)
}

func TestDeviceTokenIsSealedAtRest(t *testing.T) {
	repo := newMemoryRepo()
	s := NewServiceWithSecret(repo, "device-secret")
	ctx := context.Background()
	u, _, err := s.FindOrCreate(ctx, "fb-3", "")
	require.NoError(t, err)

	updated, err := s.UpdateDeviceToken(ctx, u.ID, " a1b2c3 ")
	require.NoError(t, err)
	assert.NotEqual(t, "a1b2c3", updated.DeviceToken)

	stored, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	token, err := s.DeviceToken(stored)
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", token)
}

func TestDeviceTokenPlaintextAndEmpty(t *testing.T) {
	s := NewServiceWithSecret(newMemoryRepo(), "")

	token, err := s.DeviceToken(&User{DeviceToken: "legacy-token"})
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", token)

	token, err = s.DeviceToken(&User{})
	require.NoError(t, err)
	assert.Empty(t, token)

	sealed := NewServiceWithSecret(newMemoryRepo(), "k")
	u := &User{ID: 1}
	u.DeviceToken, err = sealed.sealer.Seal("abc")
	require.NoError(t, err)
	_, err = s.DeviceToken(u)
	assert.Error(t, err)
}

func TestUpdateDeviceTokenUnknownUser(t *testing.T) {
	s := NewServiceWithSecret(newMemoryRepo(), "")
	_, err := s.UpdateDeviceToken(context.Background(), 99, "tok")
	assert.Error(t, err)
}

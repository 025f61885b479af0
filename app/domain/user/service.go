package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pantrypal.app/pantry-api-gateway/app/utils/crypto"
	"pantrypal.app/pantry-api-gateway/app/utils/idgen"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

type UserService struct {
	userrepo UserRepository
	sealer   *crypto.Sealer
}

func NewService(userrepo UserRepository) *UserService {
	return NewServiceWithSecret(userrepo, environment_variables.EnvironmentVariables.DEVICE_TOKEN_SECRET)
}

// NewServiceWithSecret stores device tokens in plaintext when secret is empty.
func NewServiceWithSecret(userrepo UserRepository, secret string) *UserService {
	s := &UserService{userrepo: userrepo}
	if secret != "" {
		sealer, err := crypto.NewSealer(secret)
		if err != nil {
			logger.GetLogger().Errorf("device token encryption disabled: %v", err)
		} else {
			s.sealer = sealer
		}
	}
	return s
}

// FindOrCreate returns the user bound to firebaseUID, creating it on first
// sight. The boolean reports whether a new row was written.
func (s *UserService) FindOrCreate(ctx context.Context, firebaseUID string, email string) (*User, bool, error) {
	if strings.TrimSpace(firebaseUID) == "" {
		return nil, false, fmt.Errorf("firebase uid is required")
	}
	existing, err := s.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	publicID, err := idgen.GenerateSecureID("user", 24)
	if err != nil {
		return nil, false, err
	}
	u := &User{
		PublicID:    publicID,
		FirebaseUID: firebaseUID,
		Email:       email,
	}
	if err := s.userrepo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			// lost a race with a concurrent registration
			existing, findErr := s.FindByFirebaseUID(ctx, firebaseUID)
			if findErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return u, true, nil
}

// FindByFirebaseUID returns nil, nil when no user is bound to uid.
func (s *UserService) FindByFirebaseUID(ctx context.Context, uid string) (*User, error) {
	return s.userrepo.FindFirst(ctx, UserFilter{FirebaseUID: &uid})
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*User, error) {
	return s.userrepo.FindByID(ctx, id)
}

func (s *UserService) UpdateDeviceToken(ctx context.Context, userID uint, token string) (*User, error) {
	u, err := s.userrepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %d does not exist", userID)
	}
	stored := strings.TrimSpace(token)
	if stored != "" && s.sealer != nil {
		stored, err = s.sealer.Seal(stored)
		if err != nil {
			return nil, err
		}
	}
	u.DeviceToken = stored
	if err := s.userrepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeviceToken returns the usable APNs token of u, or "" when none is registered.
func (s *UserService) DeviceToken(u *User) (string, error) {
	if u == nil || u.DeviceToken == "" {
		return "", nil
	}
	if !crypto.IsSealed(u.DeviceToken) {
		return u.DeviceToken, nil
	}
	if s.sealer == nil {
		return "", fmt.Errorf("device token of user %d is sealed but no secret is configured", u.ID)
	}
	return s.sealer.Open(u.DeviceToken)
}

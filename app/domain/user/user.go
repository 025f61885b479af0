package user

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicateUser = errors.New("user already exists")

type User struct {
	ID          uint
	PublicID    string
	FirebaseUID string
	Email       string
	// DeviceToken holds the stored (sealed) APNs token, use UserService.DeviceToken to read it.
	DeviceToken string
	CreatedAt   time.Time
}

type UserFilter struct {
	FirebaseUID *string
	Email       *string
	PublicID    *string
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindFirst(ctx context.Context, filter UserFilter) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

package identity

import (
	"context"
	"errors"
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/user"
)

var (
	// ErrInvalidCredential is returned when the verifier rejects the credential.
	ErrInvalidCredential = errors.New("identity: invalid credential")
	// ErrMalformedVerification means the verifier accepted the credential but
	// returned no subject.
	ErrMalformedVerification = errors.New("identity: malformed verification result")
	ErrUserNotFound          = errors.New("identity: user not found")
	ErrExpiredCredential     = errors.New("identity: credential expired")
	// ErrStoreUnavailable wraps fast store and durable store failures.
	ErrStoreUnavailable = errors.New("identity: store unavailable")
	// ErrVerifierUnavailable means the credential could not be checked at all,
	// for example because the signing keys could not be fetched. Retryable.
	ErrVerifierUnavailable = errors.New("identity: verifier unavailable")
)

// DefaultMaxCacheTTL matches the lifetime of a Firebase ID token.
const DefaultMaxCacheTTL = time.Hour

type VerifiedIdentity struct {
	Subject string
	Email   string
	Expiry  time.Time
}

type FastStore interface {
	// Get returns cache.ErrCacheMiss when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Verifier interface {
	// Verify returns an error wrapping ErrInvalidCredential when the
	// credential is rejected. Any other error is treated as transient.
	Verify(ctx context.Context, credential string) (*VerifiedIdentity, error)
}

type UserLookup interface {
	// FindByFirebaseUID returns nil, nil when no user matches.
	FindByFirebaseUID(ctx context.Context, uid string) (*user.User, error)
}

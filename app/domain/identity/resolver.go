package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
	"pantrypal.app/pantry-api-gateway/app/utils/idgen"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

const missTimeout = 10 * time.Second

type Resolver struct {
	store    FastStore
	verifier Verifier
	users    UserLookup
	maxTTL   time.Duration
	now      func() time.Time
	group    singleflight.Group
}

func NewResolver(store FastStore, verifier Verifier, users UserLookup) *Resolver {
	maxTTL := DefaultMaxCacheTTL
	if secs := environment_variables.EnvironmentVariables.IDENTITY_CACHE_MAX_TTL_SECONDS; secs > 0 {
		maxTTL = time.Duration(secs) * time.Second
	}
	return NewResolverWithClock(store, verifier, users, maxTTL, time.Now)
}

// NewResolverWithClock disables the TTL cap when maxTTL is not positive.
func NewResolverWithClock(store FastStore, verifier Verifier, users UserLookup, maxTTL time.Duration, now func() time.Time) *Resolver {
	return &Resolver{
		store:    store,
		verifier: verifier,
		users:    users,
		maxTTL:   maxTTL,
		now:      now,
	}
}

func credentialKey(credential string) string {
	return fmt.Sprintf(cache.CredentialKey, idgen.Fingerprint(credential))
}

// Resolve maps a bearer credential to the internal user id. A cached mapping
// is returned without contacting the verifier or the database.
func (r *Resolver) Resolve(ctx context.Context, credential string) (uint, error) {
	if credential == "" {
		return 0, ErrInvalidCredential
	}
	key := credentialKey(credential)

	id, hit, err := r.lookup(ctx, key)
	if err != nil {
		return 0, err
	}
	if hit {
		return id, nil
	}

	// The shared miss is detached from the first caller so that its
	// cancellation does not fail the callers that joined it.
	ch := r.group.DoChan(key, func() (any, error) {
		missCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), missTimeout)
		defer cancel()
		return r.resolveMiss(missCtx, key, credential)
	})
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(uint), nil
	}
}

func (r *Resolver) lookup(ctx context.Context, key string) (uint, bool, error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		logger.GetLogger().Warnf("discarding unreadable identity cache entry %s", key)
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (r *Resolver) resolveMiss(ctx context.Context, key string, credential string) (uint, error) {
	verified, err := r.verifier.Verify(ctx, credential)
	if err != nil {
		return 0, verifierError(err)
	}
	if verified == nil || verified.Subject == "" {
		return 0, ErrMalformedVerification
	}

	u, err := r.users.FindByFirebaseUID(ctx, verified.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if u == nil {
		return 0, ErrUserNotFound
	}

	ttl, ok := r.cacheTTL(verified.Expiry)
	if !ok {
		return 0, ErrExpiredCredential
	}
	if err := r.store.Set(ctx, key, strconv.FormatUint(uint64(u.ID), 10), ttl); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return u.ID, nil
}

// verifierError keeps rejections as they are and reports everything else,
// context errors included, as ErrVerifierUnavailable.
func verifierError(err error) error {
	if errors.Is(err, ErrInvalidCredential) || errors.Is(err, ErrVerifierUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrVerifierUnavailable, err)
}

// cacheTTL returns floor(expiry - now) in whole seconds, capped at maxTTL.
// ok is false when less than one second of validity remains.
func (r *Resolver) cacheTTL(expiry time.Time) (time.Duration, bool) {
	if expiry.IsZero() {
		expiry = r.now().Add(DefaultMaxCacheTTL)
	}
	remaining := expiry.Sub(r.now())
	ttl := remaining.Truncate(time.Second)
	if remaining <= 0 || ttl < time.Second {
		return 0, false
	}
	if r.maxTTL > 0 && ttl > r.maxTTL {
		ttl = r.maxTTL
	}
	return ttl, true
}

// Verify checks the credential without consulting the cache or the user table.
// Used where the user may not exist yet.
func (r *Resolver) Verify(ctx context.Context, credential string) (*VerifiedIdentity, error) {
	if credential == "" {
		return nil, ErrInvalidCredential
	}
	verified, err := r.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, verifierError(err)
	}
	if verified == nil || verified.Subject == "" {
		return nil, ErrMalformedVerification
	}
	if !verified.Expiry.IsZero() && !verified.Expiry.After(r.now()) {
		return nil, ErrExpiredCredential
	}
	return verified, nil
}

func (r *Resolver) Invalidate(ctx context.Context, credential string) error {
	if err := r.store.Delete(ctx, credentialKey(credential)); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

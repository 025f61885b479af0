package fatsecret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

type TokenService struct {
	store  TokenStore
	client Client
	now    func() time.Time
}

func NewTokenService(store TokenStore, client Client) *TokenService {
	return &TokenService{store: store, client: client, now: time.Now}
}

// GetToken returns the cached access token or fetches a new one. A failed
// cache write is logged and the fresh token is still returned.
func (s *TokenService) GetToken(ctx context.Context) (string, error) {
	cached, err := s.store.Get(ctx, cache.FatSecretTokenKey)
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		logger.GetLogger().Warnf("fatsecret token cache read failed: %v", err)
	}

	tok, err := s.client.FetchToken(ctx)
	if err != nil {
		return "", err
	}
	if tok == nil || tok.Value == "" {
		return "", ErrEmptyToken
	}

	ttl := DefaultTokenTTL
	if !tok.Expiry.IsZero() {
		ttl = tok.Expiry.Sub(s.now()).Truncate(time.Second)
	}
	if ttl >= time.Second {
		if err := s.store.Set(ctx, cache.FatSecretTokenKey, tok.Value, ttl); err != nil {
			logger.GetLogger().Errorf("failed to cache fatsecret token: %v", err)
		}
	}
	return tok.Value, nil
}

func (s *TokenService) Invalidate(ctx context.Context) error {
	if err := s.store.Delete(ctx, cache.FatSecretTokenKey); err != nil {
		return fmt.Errorf("failed to drop fatsecret token: %w", err)
	}
	return nil
}

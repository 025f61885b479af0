package fatsecret

import (
	"context"
	"errors"
	"time"

	fatsecretclient "pantrypal.app/pantry-api-gateway/app/utils/httpclients/fatsecret"
)

var ErrEmptyToken = errors.New("fatsecret: provider returned an empty access token")

// DefaultTokenTTL is used when the provider does not report an expiry.
const DefaultTokenTTL = time.Hour

type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Client interface {
	FetchToken(ctx context.Context) (*fatsecretclient.AccessToken, error)
	FoodCategories(ctx context.Context, token string) ([]fatsecretclient.FoodCategory, error)
	FoodSubCategories(ctx context.Context, token string, categoryID int64) ([]string, error)
	SearchFoodSubCategories(ctx context.Context, token string, expression string) ([]string, error)
}

package fatsecret

import (
	"context"
	"errors"

	fatsecretclient "pantrypal.app/pantry-api-gateway/app/utils/httpclients/fatsecret"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

type FatSecretService struct {
	tokens *TokenService
	client Client
}

func NewFatSecretService(tokens *TokenService, client Client) *FatSecretService {
	return &FatSecretService{tokens: tokens, client: client}
}

func (s *FatSecretService) FoodCategories(ctx context.Context) ([]fatsecretclient.FoodCategory, error) {
	var out []fatsecretclient.FoodCategory
	err := s.withToken(ctx, func(token string) error {
		var err error
		out, err = s.client.FoodCategories(ctx, token)
		return err
	})
	return out, err
}

func (s *FatSecretService) FoodSubCategories(ctx context.Context, categoryID int64) ([]string, error) {
	var out []string
	err := s.withToken(ctx, func(token string) error {
		var err error
		out, err = s.client.FoodSubCategories(ctx, token, categoryID)
		return err
	})
	return out, err
}

func (s *FatSecretService) SearchFoodSubCategories(ctx context.Context, expression string) ([]string, error) {
	var out []string
	err := s.withToken(ctx, func(token string) error {
		var err error
		out, err = s.client.SearchFoodSubCategories(ctx, token, expression)
		return err
	})
	return out, err
}

// withToken retries fn once with a fresh token when the cached one is rejected.
func (s *FatSecretService) withToken(ctx context.Context, fn func(token string) error) error {
	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		return err
	}
	err = fn(token)
	if !errors.Is(err, fatsecretclient.ErrUnauthorized) {
		return err
	}

	logger.GetLogger().Info("fatsecret access token rejected, fetching a new one")
	if err := s.tokens.Invalidate(ctx); err != nil {
		logger.GetLogger().Warnf("%v", err)
	}
	token, err = s.tokens.GetToken(ctx)
	if err != nil {
		return err
	}
	return fn(token)
}

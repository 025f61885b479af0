package pantry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/common"
	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

type PantryService struct {
	repo        PantryRepository
	ingredients *ingredient.IngredientService
	now         func() time.Time
}

func NewPantryService(repo PantryRepository, ingredients *ingredient.IngredientService) *PantryService {
	return &PantryService{
		repo:        repo,
		ingredients: ingredients,
		now:         time.Now,
	}
}

// List returns the pantry of the user with the catalog entry of every item.
// Items whose food id left the catalog keep a nil Ingredient.
func (s *PantryService) List(ctx context.Context, userID uint) ([]*PantryItem, error) {
	items, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*PantryItem{}, nil
	}
	catalog, err := s.ingredients.FindByFoodIDs(ctx, functional.Map(items, func(i *PantryItem) string { return i.FoodID }))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.Ingredient = catalog[item.FoodID]
	}
	return items, nil
}

func (s *PantryService) UpdateBatch(ctx context.Context, userID uint, changes []QuantityChange) (*BatchResult, error) {
	if len(changes) == 0 {
		return nil, common.NewValidationError("no ingredients provided", "2f9c6a1e-8d4b-4c7a-9e3f-6b1d0a5c8e27")
	}
	for _, change := range changes {
		if strings.TrimSpace(change.FoodID) == "" {
			return nil, common.NewValidationError("each ingredient must have a food id and a quantity", "7a3e1c9b-2d6f-4b8e-a1c5-9f0d3e7b2a64")
		}
	}

	foodIDs := functional.Distinct(functional.Map(changes, func(c QuantityChange) string { return c.FoodID }))
	known, err := s.ingredients.FindByFoodIDs(ctx, foodIDs)
	if err != nil {
		return nil, err
	}
	unknown := functional.Filter(foodIDs, func(id string) bool {
		_, ok := known[id]
		return !ok
	})
	if len(unknown) > 0 {
		return nil, common.NewValidationError(fmt.Sprintf("unknown food id %s", strings.Join(unknown, ", ")), "c8d2b7e4-5a1f-4e9c-b3d6-0e7a2f9c1b85")
	}

	result := &BatchResult{}
	now := s.now()
	for _, change := range changes {
		if change.Quantity == 0 {
			removed, err := s.repo.Remove(ctx, userID, change.FoodID)
			if err != nil {
				return nil, err
			}
			result.Removed += int(removed)
			continue
		}
		if err := s.repo.ApplyDelta(ctx, userID, change.FoodID, change.Quantity, now); err != nil {
			return nil, err
		}
		result.Updated++
	}

	pruned, err := s.repo.PruneEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}
	result.Removed += int(pruned)

	logger.GetLogger().Infof("pantry of user %d: updated %d, removed %d", userID, result.Updated, result.Removed)
	return result, nil
}

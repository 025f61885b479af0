package ingredient

import (
	"context"
	"sort"
	"strings"

	"pantrypal.app/pantry-api-gateway/app/domain/common"
	"pantrypal.app/pantry-api-gateway/app/domain/query"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

const MaxSearchLimit = 100

type IngredientService struct {
	repo IngredientRepository
}

func NewIngredientService(repo IngredientRepository) *IngredientService {
	return &IngredientService{repo: repo}
}

func (s *IngredientService) List(ctx context.Context, p *query.Pagination) ([]*Ingredient, int64, error) {
	items, err := s.repo.FindByFilter(ctx, IngredientFilter{}, p)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, IngredientFilter{})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search matches names case-insensitively. Names starting with q come first,
// then everything else, each group ordered by name.
func (s *IngredientService) Search(ctx context.Context, q string, limit int) ([]*Ingredient, error) {
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return nil, common.NewValidationError("search query is required", "0b8e1f52-6d7c-4b1e-9f0a-3c2d5e8a7b61")
	}
	if limit < 1 {
		return nil, common.NewValidationError("limit must be a positive number", "a7d2c4e9-1f3b-4a8e-b6d0-5c9e2f1a8b73")
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	matches, err := s.repo.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matches[i].Name), term)
		pj := strings.HasPrefix(strings.ToLower(matches[j].Name), term)
		if pi != pj {
			return pi
		}
		return matches[i].Name < matches[j].Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *IngredientService) FindByFoodID(ctx context.Context, foodID string) (*Ingredient, error) {
	return s.repo.FindByFoodID(ctx, foodID)
}

func (s *IngredientService) FindByFoodIDs(ctx context.Context, foodIDs []string) (map[string]*Ingredient, error) {
	if len(foodIDs) == 0 {
		return map[string]*Ingredient{}, nil
	}
	items, err := s.repo.FindByFilter(ctx, IngredientFilter{FoodIDs: foodIDs}, nil)
	if err != nil {
		return nil, err
	}
	return functional.ConvertToMap(items, func(i *Ingredient) string { return i.FoodID }), nil
}

func (s *IngredientService) Save(ctx context.Context, i *Ingredient) error {
	if strings.TrimSpace(i.FoodID) == "" || strings.TrimSpace(i.Name) == "" {
		return common.NewValidationError("food id and name are required", "4d1c8f2e-9a6b-4e3d-8c7f-1b2a5d9e6c40")
	}
	if i.ExpirationDays < 0 {
		return common.NewValidationError("expiration days must not be negative", "e9b3a1d7-5c2f-4f8e-a6d4-0c7b9e3f1a52")
	}
	return s.repo.Upsert(ctx, i)
}

package recipe

import (
	"context"
	"strings"

	"pantrypal.app/pantry-api-gateway/app/domain/common"
)

type RecipeService struct {
	repo RecipeRepository
}

func NewRecipeService(repo RecipeRepository) *RecipeService {
	return &RecipeService{repo: repo}
}

func (s *RecipeService) List(ctx context.Context, userID uint) ([]*Recipe, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Add saves r for its user. Saving the same uri twice is not an error, the
// boolean reports whether a new row was created.
func (s *RecipeService) Add(ctx context.Context, r *Recipe) (bool, error) {
	r.URI = strings.TrimSpace(r.URI)
	r.Label = strings.TrimSpace(r.Label)
	if r.URI == "" || r.Label == "" {
		return false, common.NewValidationError("recipe uri and label are required", "5b7e2d9a-3c1f-4a6e-8d0b-4f9c1e7a3d52")
	}
	if r.Calories.IsNegative() || r.TotalWeight.IsNegative() {
		return false, common.NewValidationError("calories and total weight must not be negative", "1e8c4a7d-6b2f-4d9e-a3c0-8b5f2d1e9a76")
	}
	return s.repo.InsertIgnore(ctx, r)
}

func (s *RecipeService) Delete(ctx context.Context, userID uint, uri string) (bool, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return false, common.NewValidationError("recipe uri is required", "9c3f6b1e-2a7d-4e5c-b8f1-0d4a7e2c6b93")
	}
	n, err := s.repo.Delete(ctx, userID, uri)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

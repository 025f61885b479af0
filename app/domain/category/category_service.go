package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pantrypal.app/pantry-api-gateway/app/domain/common"
	"pantrypal.app/pantry-api-gateway/app/domain/fatsecret"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

const syncLockTTL = 10 * time.Minute

type CategoryService struct {
	repo    CategoryRepository
	catalog FoodCatalog
	locker  common.Locker
}

func NewCategoryService(repo CategoryRepository, catalog *fatsecret.FatSecretService, locker common.Locker) *CategoryService {
	return NewCategoryServiceWithCatalog(repo, catalog, locker)
}

func NewCategoryServiceWithCatalog(repo CategoryRepository, catalog FoodCatalog, locker common.Locker) *CategoryService {
	return &CategoryService{repo: repo, catalog: catalog, locker: locker}
}

func (s *CategoryService) List(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return categories, nil
	}
	ids := functional.Map(categories, func(c *Category) int64 { return c.ID })
	subs, err := s.repo.FindSubcategories(ctx, ids)
	if err != nil {
		return nil, err
	}
	grouped := functional.GroupBy(subs, func(sc *Subcategory) int64 { return sc.CategoryID })
	for _, c := range categories {
		c.Subcategories = functional.Map(grouped[c.ID], func(sc *Subcategory) string { return sc.Name })
	}
	return categories, nil
}

func (s *CategoryService) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Classify asks FatSecret for the sub categories of the best matching food and
// returns the first one that maps to a known category, or nil.
func (s *CategoryService) Classify(ctx context.Context, food string) (*Category, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return nil, common.NewValidationError("food name is required", "f1a6c3e8-7d2b-4c9f-a5e0-3b8d1f6c2a94")
	}
	subs, err := s.catalog.SearchFoodSubCategories(ctx, food)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		c, err := s.repo.FindBySubcategory(ctx, sub)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	return nil, nil
}

// SyncFromFatSecret upserts the FatSecret category tree. Only one replica
// runs it at a time.
func (s *CategoryService) SyncFromFatSecret(ctx context.Context) (*SyncResult, error) {
	var result *SyncResult
	run := func(ctx context.Context) error {
		var err error
		result, err = s.sync(ctx)
		return err
	}
	if s.locker == nil {
		return result, run(ctx)
	}
	if err := s.locker.WithLock(ctx, cache.CategorySyncLock, syncLockTTL, run); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CategoryService) sync(ctx context.Context) (*SyncResult, error) {
	log := logger.GetLogger()
	categories, err := s.catalog.FoodCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch food categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("fatsecret returned no food categories")
	}

	result := &SyncResult{}
	for _, fc := range categories {
		if err := s.repo.UpsertCategory(ctx, &Category{ID: fc.ID, Name: fc.Name, Description: fc.Description}); err != nil {
			return nil, err
		}
		result.Categories++

		subs, err := s.catalog.FoodSubCategories(ctx, fc.ID)
		if err != nil {
			log.Warnf("skipping sub categories of %d (%s): %v", fc.ID, fc.Name, err)
			continue
		}
		for _, name := range subs {
			if strings.TrimSpace(name) == "" {
				continue
			}
			if err := s.repo.UpsertSubcategory(ctx, &Subcategory{Name: name, CategoryID: fc.ID}); err != nil {
				return nil, err
			}
			result.Subcategories++
		}
	}
	log.Infof("category sync finished: %d categories, %d sub categories", result.Categories, result.Subcategories)
	return result, nil
}

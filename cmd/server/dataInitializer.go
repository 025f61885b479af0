package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"pantrypal.app/pantry-api-gateway/app/domain/category"
	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/domain/query"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/app/utils/ptr"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

//go:embed seed/ingredients.json
var ingredientSeed []byte

type seedIngredient struct {
	FoodID         string          `json:"food_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	QuantityType   string          `json:"quantity_type"`
	ExpirationDays int             `json:"expiration_days"`
	ImageURL       string          `json:"image_url"`
	Quantity       decimal.Decimal `json:"quantity"`
	Fat            decimal.Decimal `json:"fat"`
	Cholesterol    decimal.Decimal `json:"cholesterol"`
	Sodium         decimal.Decimal `json:"sodium"`
	Potassium      decimal.Decimal `json:"potassium"`
	Carbohydrate   decimal.Decimal `json:"carbohydrate"`
	Protein        decimal.Decimal `json:"protein"`
	Calorie        decimal.Decimal `json:"calorie"`
}

type DataInitializer struct {
	ingredientService *ingredient.IngredientService
	categoryService   *category.CategoryService
}

func (d *DataInitializer) Install(ctx context.Context) error {
	if err := d.installIngredientCatalog(ctx); err != nil {
		return fmt.Errorf("failed to seed ingredient catalog: %w", err)
	}
	if err := d.installCategories(ctx); err != nil {
		// the weekly cron retries, startup goes on without categories
		logger.GetLogger().
			WithField("error_code", "b61d0f3a-28c4-4e7b-9a15-e3c7d4f82a90").
			Warnf("initial category sync failed: %v", err)
	}
	return nil
}

func (d *DataInitializer) installIngredientCatalog(ctx context.Context) error {
	_, total, err := d.ingredientService.List(ctx, &query.Pagination{Limit: ptr.To(1)})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	var seeds []seedIngredient
	if err := json.Unmarshal(ingredientSeed, &seeds); err != nil {
		return err
	}
	for _, s := range seeds {
		err := d.ingredientService.Save(ctx, &ingredient.Ingredient{
			FoodID:         s.FoodID,
			Name:           s.Name,
			Category:       s.Category,
			QuantityType:   s.QuantityType,
			ExpirationDays: s.ExpirationDays,
			ImageURL:       s.ImageURL,
			Quantity:       s.Quantity,
			Fat:            s.Fat,
			Cholesterol:    s.Cholesterol,
			Sodium:         s.Sodium,
			Potassium:      s.Potassium,
			Carbohydrate:   s.Carbohydrate,
			Protein:        s.Protein,
			Calorie:        s.Calorie,
		})
		if err != nil {
			return fmt.Errorf("ingredient %s: %w", s.FoodID, err)
		}
	}
	logger.GetLogger().Infof("seeded %d catalog ingredients", len(seeds))
	return nil
}

func (d *DataInitializer) installCategories(ctx context.Context) error {
	if !environment_variables.EnvironmentVariables.FatSecretConfigured() {
		return nil
	}
	empty, err := d.categoryService.IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}
	result, err := d.categoryService.SyncFromFatSecret(ctx)
	if err != nil {
		return err
	}
	logger.GetLogger().Infof("synced %d categories and %d subcategories", result.Categories, result.Subcategories)
	return nil
}

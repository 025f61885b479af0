package domain

import (
	"github.com/google/wire"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/category"
	"pantrypal.app/pantry-api-gateway/app/domain/cron"
	"pantrypal.app/pantry-api-gateway/app/domain/expiry"
	"pantrypal.app/pantry-api-gateway/app/domain/fatsecret"
	"pantrypal.app/pantry-api-gateway/app/domain/identity"
	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/domain/notification"
	"pantrypal.app/pantry-api-gateway/app/domain/pantry"
	"pantrypal.app/pantry-api-gateway/app/domain/recipe"
	"pantrypal.app/pantry-api-gateway/app/domain/report"
	"pantrypal.app/pantry-api-gateway/app/domain/user"
)

var ServiceProvider = wire.NewSet(
	user.NewService,
	identity.NewResolver,
	auth.NewAuthService,
	ingredient.NewIngredientService,
	pantry.NewPantryService,
	recipe.NewRecipeService,
	report.NewReportService,
	expiry.NewScanner,
	fatsecret.NewTokenService,
	fatsecret.NewFatSecretService,
	category.NewCategoryService,
	notification.NewNotifierService,
	cron.NewCronService,
	wire.Bind(new(identity.UserLookup), new(*user.UserService)),
	wire.Bind(new(notification.Recipients), new(*user.UserService)),
)

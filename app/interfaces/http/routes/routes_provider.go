package routes

import (
	"github.com/google/wire"
	v1 "pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/categories"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/ingredients"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/pantry"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/recipes"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/reports"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/users"
)

var RouteProvider = wire.NewSet(
	users.NewUsersRoute,
	ingredients.NewIngredientsRoute,
	pantry.NewPantryRoute,
	recipes.NewRecipesRoute,
	reports.NewReportsRoute,
	categories.NewCategoriesRoute,
	v1.NewV1Route,
)

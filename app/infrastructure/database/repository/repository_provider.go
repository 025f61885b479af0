package repository

import (
	"github.com/google/wire"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/categoryrepo"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/ingredientrepo"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/pantryrepo"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/reciperepo"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/reportrepo"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/transaction"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	ingredientrepo.NewIngredientGormRepository,
	pantryrepo.NewPantryGormRepository,
	pantryrepo.NewOwnershipGormRepository,
	reciperepo.NewRecipeGormRepository,
	reportrepo.NewReportGormRepository,
	categoryrepo.NewCategoryGormRepository,
	transaction.NewDatabase,
)

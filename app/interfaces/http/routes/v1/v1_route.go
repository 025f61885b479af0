package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/categories"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/ingredients"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/pantry"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/recipes"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/reports"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/users"
	"pantrypal.app/pantry-api-gateway/config"
)

type V1Route struct {
	usersRoute       *users.UsersRoute
	ingredientsRoute *ingredients.IngredientsRoute
	pantryRoute      *pantry.PantryRoute
	recipesRoute     *recipes.RecipesRoute
	reportsRoute     *reports.ReportsRoute
	categoriesRoute  *categories.CategoriesRoute
}

func NewV1Route(
	usersRoute *users.UsersRoute,
	ingredientsRoute *ingredients.IngredientsRoute,
	pantryRoute *pantry.PantryRoute,
	recipesRoute *recipes.RecipesRoute,
	reportsRoute *reports.ReportsRoute,
	categoriesRoute *categories.CategoriesRoute,
) *V1Route {
	return &V1Route{
		usersRoute,
		ingredientsRoute,
		pantryRoute,
		recipesRoute,
		reportsRoute,
		categoriesRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.usersRoute.RegisterRouter(v1Router)
	v1Route.ingredientsRoute.RegisterRouter(v1Router)
	v1Route.pantryRoute.RegisterRouter(v1Router)
	v1Route.recipesRoute.RegisterRouter(v1Router)
	v1Route.reportsRoute.RegisterRouter(v1Router)
	v1Route.categoriesRoute.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        Server API
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":         config.ServiceName,
		"version":         config.Version,
		"commit":          config.Commit,
		"env_reloaded_at": config.EnvReloadedAt,
	})
}

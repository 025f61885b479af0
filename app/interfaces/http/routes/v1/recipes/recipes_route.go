package recipes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/recipe"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type RecipesRoute struct {
	recipeService *recipe.RecipeService
	authService   *auth.AuthService
}

func NewRecipesRoute(recipeService *recipe.RecipeService, authService *auth.AuthService) *RecipesRoute {
	return &RecipesRoute{
		recipeService,
		authService,
	}
}

func (route *RecipesRoute) RegisterRouter(router gin.IRouter) {
	recipesRouter := router.Group("/recipes",
		route.authService.ResolvedUserMiddleware(),
	)
	recipesRouter.GET("", route.List)
	recipesRouter.POST("", route.Add)
	recipesRouter.DELETE("", route.Delete)
}

type RecipeRequest struct {
	URI         string          `json:"uri"`
	Label       string          `json:"label"`
	Image       string          `json:"image"`
	URL         string          `json:"url"`
	Calories    decimal.Decimal `json:"calories"`
	TotalWeight decimal.Decimal `json:"totalWeight"`
	CuisineType []string        `json:"cuisineType"`
	MealType    []string        `json:"mealType"`
	DishType    []string        `json:"dishType"`
}

type RecipeResponse struct {
	URI         string          `json:"uri"`
	Label       string          `json:"label"`
	Image       string          `json:"image"`
	URL         string          `json:"url"`
	Calories    decimal.Decimal `json:"calories"`
	TotalWeight decimal.Decimal `json:"totalWeight"`
	CuisineType []string        `json:"cuisineType"`
	MealType    []string        `json:"mealType"`
	DishType    []string        `json:"dishType"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AddRecipeResponse struct {
	URI     string `json:"uri"`
	Created bool   `json:"created"`
}

type DeleteRecipeResponse struct {
	URI     string `json:"uri"`
	Deleted bool   `json:"deleted"`
}

func toRecipeResponse(r *recipe.Recipe) RecipeResponse {
	return RecipeResponse{
		URI:         r.URI,
		Label:       r.Label,
		Image:       r.Image,
		URL:         r.URL,
		Calories:    r.Calories,
		TotalWeight: r.TotalWeight,
		CuisineType: nonNil(r.CuisineType),
		MealType:    nonNil(r.MealType),
		DishType:    nonNil(r.DishType),
		CreatedAt:   r.CreatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// @Summary List saved recipes
// @Tags Recipes API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ListResponse[RecipeResponse]
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/recipes [get]
func (route *RecipesRoute) List(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	items, err := route.recipeService.List(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "7c4f1a9e-3b6d-4e2c-8a5f-0d9b6e3c1a74")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(items, toRecipeResponse), int64(len(items)), 0))
}

// @Summary Save a recipe
// @Description Saving a recipe twice keeps the first copy.
// @Tags Recipes API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RecipeRequest true "Recipe"
// @Success 200 {object} AddRecipeResponse "Already saved"
// @Success 201 {object} AddRecipeResponse "Saved"
// @Failure 400 {object} responses.ErrorResponse "Missing uri or label"
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/recipes [post]
func (route *RecipesRoute) Add(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	var request RecipeRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "2a6e9d3b-8f1c-4b7e-9d4a-5c0f8b2e6d31",
			Error: err.Error(),
		})
		return
	}
	created, err := route.recipeService.Add(reqCtx.Request.Context(), &recipe.Recipe{
		UserID:      userID,
		URI:         request.URI,
		Label:       request.Label,
		Image:       request.Image,
		URL:         request.URL,
		Calories:    request.Calories,
		TotalWeight: request.TotalWeight,
		CuisineType: request.CuisineType,
		MealType:    request.MealType,
		DishType:    request.DishType,
	})
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "e1b5c8f2-4d7a-4a3e-b9c6-2f8d0a5e7b13")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	reqCtx.JSON(status, AddRecipeResponse{URI: request.URI, Created: created})
}

// @Summary Delete a saved recipe
// @Tags Recipes API
// @Security BearerAuth
// @Produce json
// @Param uri query string true "Recipe uri"
// @Success 200 {object} DeleteRecipeResponse
// @Failure 400 {object} responses.ErrorResponse "Missing uri"
// @Failure 404 {object} responses.ErrorResponse "Recipe not saved"
// @Router /v1/recipes [delete]
func (route *RecipesRoute) Delete(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	uri := reqCtx.Query("uri")
	deleted, err := route.recipeService.Delete(reqCtx.Request.Context(), userID, uri)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "5f9a2d7c-1e4b-4c8f-a6d3-8b0e4c7a2f96")
		return
	}
	if !deleted {
		reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "c3d7a1e5-9b2f-4e6c-8d4a-7f1b5e9c3a20",
			Error: "recipe not found",
		})
		return
	}
	reqCtx.JSON(http.StatusOK, DeleteRecipeResponse{URI: uri, Deleted: true})
}

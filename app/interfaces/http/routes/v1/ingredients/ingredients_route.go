package ingredients

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/ingredient"
	"pantrypal.app/pantry-api-gateway/app/domain/query"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
	"pantrypal.app/pantry-api-gateway/app/utils/ptr"
)

const defaultSearchLimit = 10

type IngredientsRoute struct {
	ingredientService *ingredient.IngredientService
	authService       *auth.AuthService
}

func NewIngredientsRoute(ingredientService *ingredient.IngredientService, authService *auth.AuthService) *IngredientsRoute {
	return &IngredientsRoute{
		ingredientService,
		authService,
	}
}

func (route *IngredientsRoute) RegisterRouter(router gin.IRouter) {
	ingredientsRouter := router.Group("/ingredients",
		route.authService.ResolvedUserMiddleware(),
	)
	ingredientsRouter.GET("", route.List)
	ingredientsRouter.GET("/search", route.Search)
}

type NutritionResponse struct {
	Fat          decimal.Decimal `json:"fat"`
	Cholesterol  decimal.Decimal `json:"cholesterol"`
	Sodium       decimal.Decimal `json:"sodium"`
	Potassium    decimal.Decimal `json:"potassium"`
	Carbohydrate decimal.Decimal `json:"carbohydrate"`
	Protein      decimal.Decimal `json:"protein"`
	Calorie      decimal.Decimal `json:"calorie"`
}

type IngredientResponse struct {
	FoodID         string            `json:"food_id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	QuantityType   string            `json:"quantity_type"`
	ExpirationDays int               `json:"expiration_days"`
	ImageURL       string            `json:"image_url"`
	Quantity       decimal.Decimal   `json:"quantity"`
	Nutrition      NutritionResponse `json:"nutrition"`
}

func ToIngredientResponse(i *ingredient.Ingredient) IngredientResponse {
	return IngredientResponse{
		FoodID:         i.FoodID,
		Name:           i.Name,
		Category:       i.Category,
		QuantityType:   i.QuantityType,
		ExpirationDays: i.ExpirationDays,
		ImageURL:       i.ImageURL,
		Quantity:       i.Quantity,
		Nutrition: NutritionResponse{
			Fat:          i.Fat,
			Cholesterol:  i.Cholesterol,
			Sodium:       i.Sodium,
			Potassium:    i.Potassium,
			Carbohydrate: i.Carbohydrate,
			Protein:      i.Protein,
			Calorie:      i.Calorie,
		},
	}
}

// @Summary List the ingredient catalog
// @Tags Ingredients API
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Rows to skip"
// @Param order query string false "asc or desc by name"
// @Success 200 {object} responses.ListResponse[IngredientResponse]
// @Failure 400 {object} responses.ErrorResponse "Invalid pagination"
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/ingredients [get]
func (route *IngredientsRoute) List(reqCtx *gin.Context) {
	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "2d7f9b1e-5c3a-4e8d-9f6b-1a4c7e2d8b53",
			Error: err.Error(),
		})
		return
	}
	items, total, err := route.ingredientService.List(reqCtx.Request.Context(), pagination)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "9a3e6c1f-8b4d-4f2a-a7e9-5d0b3c8f1e62")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(items, ToIngredientResponse), total, ptr.Deref(pagination.Offset, 0)))
}

// @Summary Search the ingredient catalog
// @Description Case-insensitive substring match on the name. Names starting with the query are listed first.
// @Tags Ingredients API
// @Security BearerAuth
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Maximum results (default 10, max 100)"
// @Success 200 {object} responses.ListResponse[IngredientResponse]
// @Failure 400 {object} responses.ErrorResponse "Missing query or bad limit"
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/ingredients/search [get]
func (route *IngredientsRoute) Search(reqCtx *gin.Context) {
	limit := defaultSearchLimit
	if raw := reqCtx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "6c1b4e8a-3f9d-4a7c-b2e5-8d0f6a3c9e14",
				Error: "invalid limit number",
			})
			return
		}
		limit = parsed
	}
	items, err := route.ingredientService.Search(reqCtx.Request.Context(), reqCtx.Query("q"), limit)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "f4a8d2c6-7e1b-4c9f-8a3d-2b6e0c5f9a71")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(items, ToIngredientResponse), int64(len(items)), 0))
}

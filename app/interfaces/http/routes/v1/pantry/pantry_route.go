package pantry

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/expiry"
	"pantrypal.app/pantry-api-gateway/app/domain/pantry"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/ingredients"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type PantryRoute struct {
	pantryService *pantry.PantryService
	scanner       *expiry.Scanner
	authService   *auth.AuthService
	now           func() time.Time
}

func NewPantryRoute(pantryService *pantry.PantryService, scanner *expiry.Scanner, authService *auth.AuthService) *PantryRoute {
	return &PantryRoute{
		pantryService: pantryService,
		scanner:       scanner,
		authService:   authService,
		now:           time.Now,
	}
}

func (route *PantryRoute) RegisterRouter(router gin.IRouter) {
	pantryRouter := router.Group("/pantry",
		route.authService.ResolvedUserMiddleware(),
	)
	pantryRouter.GET("", route.List)
	pantryRouter.POST("/update", route.Update)
	pantryRouter.GET("/expiring", route.Expiring)
}

type PantryItemResponse struct {
	FoodID     string                          `json:"food_id"`
	Quantity   int                             `json:"quantity"`
	DateAdded  time.Time                       `json:"date_added"`
	Ingredient *ingredients.IngredientResponse `json:"ingredient,omitempty"`
}

type UpdatePantryItem struct {
	FoodID   string `json:"food_id" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

type UpdatePantryRequest struct {
	Ingredients []UpdatePantryItem `json:"ingredients" binding:"required,dive"`
}

func toPantryItemResponse(item *pantry.PantryItem) PantryItemResponse {
	resp := PantryItemResponse{
		FoodID:    item.FoodID,
		Quantity:  item.Quantity,
		DateAdded: item.DateAdded,
	}
	if item.Ingredient != nil {
		ing := ingredients.ToIngredientResponse(item.Ingredient)
		resp.Ingredient = &ing
	}
	return resp
}

// @Summary List the caller's pantry
// @Tags Pantry API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ListResponse[PantryItemResponse]
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Failure 503 {object} responses.ErrorResponse "Identity store unavailable"
// @Router /v1/pantry [get]
func (route *PantryRoute) List(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	items, err := route.pantryService.List(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "3e8b1d6f-4a2c-4f9e-8d7b-0c5a9e3f1b62")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(items, toPantryItemResponse), int64(len(items)), 0))
}

// @Summary Update pantry quantities
// @Description Adds each quantity to the stored one. A quantity of 0 removes the item, items dropping to zero or below are removed.
// @Tags Pantry API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdatePantryRequest true "Quantity changes"
// @Success 200 {object} responses.GeneralResponse[pantry.BatchResult]
// @Failure 400 {object} responses.ErrorResponse "Invalid payload or unknown food id"
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/pantry/update [post]
func (route *PantryRoute) Update(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	var request UpdatePantryRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "8f2d6a4c-1e9b-4c7d-a5f3-6b0e2d8c4a19",
			Error: "each ingredient must have 'food_id' and 'quantity'",
		})
		return
	}
	changes := functional.Map(request.Ingredients, func(item UpdatePantryItem) pantry.QuantityChange {
		return pantry.QuantityChange{FoodID: item.FoodID, Quantity: *item.Quantity}
	})
	result, err := route.pantryService.UpdateBatch(reqCtx.Request.Context(), userID, changes)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "d5a9c3e7-2b8f-4d1a-9c6e-4f0b7a3d2e85")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[*pantry.BatchResult]{
		Status: responses.ResponseCodeOk,
		Result: result,
	})
}

// @Summary List items expiring soon
// @Description Pantry items with zero or one whole day of shelf life left.
// @Tags Pantry API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ListResponse[expiry.ExpiringItem]
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/pantry/expiring [get]
func (route *PantryRoute) Expiring(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	items, err := route.scanner.ScanForUser(reqCtx.Request.Context(), userID, route.now())
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "1b7e4c9a-6d3f-4a8b-b2e6-9c5d0f3a7e48")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(items, int64(len(items)), 0))
}

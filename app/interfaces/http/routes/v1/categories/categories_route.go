package categories

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/category"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
	fatsecretclient "pantrypal.app/pantry-api-gateway/app/utils/httpclients/fatsecret"
)

type CategoriesRoute struct {
	categoryService *category.CategoryService
	authService     *auth.AuthService
}

func NewCategoriesRoute(categoryService *category.CategoryService, authService *auth.AuthService) *CategoriesRoute {
	return &CategoriesRoute{
		categoryService,
		authService,
	}
}

func (route *CategoriesRoute) RegisterRouter(router gin.IRouter) {
	categoriesRouter := router.Group("/categories",
		route.authService.ResolvedUserMiddleware(),
	)
	categoriesRouter.GET("", route.List)
	categoriesRouter.GET("/classify", route.Classify)
}

type CategoryResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Subcategories []string `json:"subcategories"`
}

type ClassifyResponse struct {
	Query    string            `json:"query"`
	Category *CategoryResponse `json:"category"`
}

func toCategoryResponse(c *category.Category) CategoryResponse {
	subs := c.Subcategories
	if subs == nil {
		subs = []string{}
	}
	return CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Subcategories: subs,
	}
}

// @Summary List food categories
// @Tags Categories API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ListResponse[CategoryResponse]
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/categories [get]
func (route *CategoriesRoute) List(reqCtx *gin.Context) {
	items, err := route.categoryService.List(reqCtx.Request.Context())
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "8e1c5a9d-3f7b-4d2e-a6c8-0b4f9e2d7a35")
		return
	}
	results := make([]CategoryResponse, 0, len(items))
	for _, c := range items {
		results = append(results, toCategoryResponse(c))
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(results, int64(len(results)), 0))
}

// @Summary Classify a food name
// @Description Looks the food up on FatSecret and maps its sub categories to a known category. category is null when nothing matched.
// @Tags Categories API
// @Security BearerAuth
// @Produce json
// @Param q query string true "Food name"
// @Success 200 {object} ClassifyResponse
// @Failure 400 {object} responses.ErrorResponse "Missing query"
// @Failure 503 {object} responses.ErrorResponse "FatSecret is not configured"
// @Router /v1/categories/classify [get]
func (route *CategoriesRoute) Classify(reqCtx *gin.Context) {
	q := reqCtx.Query("q")
	c, err := route.categoryService.Classify(reqCtx.Request.Context(), q)
	if err != nil {
		if errors.Is(err, fatsecretclient.ErrNotConfigured) {
			reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "2f6b9e3a-7c1d-4a8f-b5e2-9d3c0a6f1b84",
				Error: err.Error(),
			})
			return
		}
		responses.AbortWithServiceError(reqCtx, err, "b4e8a2d6-1c9f-4e3b-8a7d-5f0c2e9b6a18")
		return
	}
	resp := ClassifyResponse{Query: q}
	if c != nil {
		cr := toCategoryResponse(c)
		resp.Category = &cr
	}
	reqCtx.JSON(http.StatusOK, resp)
}

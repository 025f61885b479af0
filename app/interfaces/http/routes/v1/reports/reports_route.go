package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/report"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
)

type ReportsRoute struct {
	reportService *report.ReportService
	authService   *auth.AuthService
}

func NewReportsRoute(reportService *report.ReportService, authService *auth.AuthService) *ReportsRoute {
	return &ReportsRoute{
		reportService,
		authService,
	}
}

func (route *ReportsRoute) RegisterRouter(router gin.IRouter) {
	reportsRouter := router.Group("/reports",
		route.authService.ResolvedUserMiddleware(),
	)
	reportsRouter.GET("", route.List)
	reportsRouter.POST("", route.Add)
}

type AddReportRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type ReportResponse struct {
	ID          uint      `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func toReportResponse(r *report.Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID,
		Subject:     r.Subject,
		Description: r.Description,
		Date:        r.Date,
	}
}

// @Summary List the caller's reports
// @Tags Reports API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ListResponse[ReportResponse]
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/reports [get]
func (route *ReportsRoute) List(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	items, err := route.reportService.List(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "4b8e2f6a-9d1c-4a5e-b7f3-2c6d0a9e4b17")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(items, toReportResponse), int64(len(items)), 0))
}

// @Summary File a report
// @Tags Reports API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AddReportRequest true "Report"
// @Success 201 {object} responses.GeneralResponse[ReportResponse]
// @Failure 400 {object} responses.ErrorResponse "Missing subject or description"
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/reports [post]
func (route *ReportsRoute) Add(reqCtx *gin.Context) {
	userID, _ := auth.GetUserIDFromContext(reqCtx)
	var request AddReportRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "6d0a3f8c-2e5b-4c9a-8f1d-7b4e0c6a3d52",
			Error: err.Error(),
		})
		return
	}
	created, err := route.reportService.Add(reqCtx.Request.Context(), userID, request.Subject, request.Description)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "a9f3c7e1-5b2d-4e8a-9c6f-1d0b4e8a2c73")
		return
	}
	reqCtx.JSON(http.StatusCreated, responses.GeneralResponse[ReportResponse]{
		Status: responses.ResponseCodeOk,
		Result: toReportResponse(created),
	})
}

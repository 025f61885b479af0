package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/domain/common"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

// AbortWithServiceError answers 400 for validation errors and 500 otherwise.
// The code of a common.Error wins over fallbackCode.
func AbortWithServiceError(reqCtx *gin.Context, err error, fallbackCode string) {
	code := fallbackCode
	var domainErr *common.Error
	if errors.As(err, &domainErr) && domainErr.GetCode() != "" {
		code = domainErr.GetCode()
	}
	if common.IsValidation(err) {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Code:  code,
			Error: err.Error(),
		})
		return
	}
	logger.GetLogger().WithField("error_code", code).Errorf("%s %s: %v", reqCtx.Request.Method, reqCtx.FullPath(), err)
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:  code,
		Error: "internal server error",
	})
}

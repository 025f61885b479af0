package requests

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func GetIntParam(reqCtx *gin.Context, paramName string) (int, error) {
	param := reqCtx.Param(paramName)
	if param == "" {
		return 0, fmt.Errorf("invalid param")
	}
	value, err := strconv.Atoi(param)
	return value, err
}

// GetTokenFromBearer accepts "Bearer <token>" and, for older mobile builds, the
// bare token in the Authorization header.
func GetTokenFromBearer(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" || strings.EqualFold(authHeader, "Bearer") {
		return "", false
	}

	token := authHeader
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		token = strings.TrimSpace(authHeader[7:])
	} else if strings.Contains(authHeader, " ") {
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, true
}

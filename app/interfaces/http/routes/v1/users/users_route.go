package users

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"pantrypal.app/pantry-api-gateway/app/domain/auth"
	"pantrypal.app/pantry-api-gateway/app/domain/user"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
)

type UsersRoute struct {
	userService *user.UserService
	authService *auth.AuthService
}

func NewUsersRoute(userService *user.UserService, authService *auth.AuthService) *UsersRoute {
	return &UsersRoute{
		userService,
		authService,
	}
}

func (route *UsersRoute) RegisterRouter(router gin.IRouter) {
	usersRouter := router.Group("/users")
	usersRouter.POST("",
		route.authService.VerifiedIdentityMiddleware(),
		route.Register,
	)
	me := usersRouter.Group("/me",
		route.authService.ResolvedUserMiddleware(),
		route.authService.RegisteredUserMiddleware(),
	)
	me.GET("", route.GetMe)
	me.PUT("/device-token", route.UpdateDeviceToken)
	me.POST("/logout", route.Logout)
}

type RegisterRequest struct {
	Email string `json:"email"`
}

type UserResponse struct {
	Object         string    `json:"object"`
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HasDeviceToken bool      `json:"has_device_token"`
	CreatedAt      time.Time `json:"created_at"`
	JustRegistered bool      `json:"just_registered,omitempty"`
}

type DeviceTokenRequest struct {
	DeviceToken string `json:"device_token"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		Object:         "user",
		ID:             u.PublicID,
		Email:          u.Email,
		HasDeviceToken: u.DeviceToken != "",
		CreatedAt:      u.CreatedAt,
	}
}

// @Summary Register the caller
// @Description Creates the internal user bound to the verified Firebase credential. Calling it again returns the existing user.
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RegisterRequest false "Optional e-mail override"
// @Success 200 {object} UserResponse "User already registered"
// @Success 201 {object} UserResponse "User created"
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /v1/users [post]
func (route *UsersRoute) Register(reqCtx *gin.Context) {
	verified, ok := auth.GetVerifiedIdentityFromContext(reqCtx)
	if !ok {
		reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
			Code: "0c2f5e1a-4b7d-4e3c-8f9a-1d6b2c7e5a30",
		})
		return
	}
	var request RegisterRequest
	if reqCtx.Request.ContentLength > 0 {
		if err := reqCtx.ShouldBindJSON(&request); err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "7e4a9c1d-2b5f-4d8e-a3c6-9f0b1e7d2c58",
				Error: err.Error(),
			})
			return
		}
	}
	email := strings.TrimSpace(request.Email)
	if email == "" {
		email = verified.Email
	}
	if email == "" {
		email = strings.TrimSpace(reqCtx.GetHeader("Email"))
	}

	u, created, err := route.userService.FindOrCreate(reqCtx.Request.Context(), verified.Subject, email)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "a2d8f6b3-9c1e-4f7a-b5d0-6e3c8a1f9b27")
		return
	}
	resp := toUserResponse(u)
	if created {
		resp.JustRegistered = true
		reqCtx.JSON(http.StatusCreated, resp)
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// @Summary Get the caller
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Failure 404 {object} responses.ErrorResponse "User not registered"
// @Router /v1/users/me [get]
func (route *UsersRoute) GetMe(reqCtx *gin.Context) {
	u, _ := auth.GetUserFromContext(reqCtx)
	reqCtx.JSON(http.StatusOK, toUserResponse(u))
}

// @Summary Register an APNs device token
// @Description Stores the token used by the expiry notifier. An empty token unregisters the device.
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DeviceTokenRequest true "APNs device token"
// @Success 200 {object} UserResponse
// @Failure 400 {object} responses.ErrorResponse "Invalid payload"
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/users/me/device-token [put]
func (route *UsersRoute) UpdateDeviceToken(reqCtx *gin.Context) {
	u, _ := auth.GetUserFromContext(reqCtx)
	var request DeviceTokenRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "4f1b8d2e-6a3c-4e9f-8b7d-2c5a0e9f3d16",
			Error: err.Error(),
		})
		return
	}
	updated, err := route.userService.UpdateDeviceToken(reqCtx.Request.Context(), u.ID, request.DeviceToken)
	if err != nil {
		responses.AbortWithServiceError(reqCtx, err, "e8c3a5f1-0d7b-4b2e-9a6c-4f1d8e2b7c95")
		return
	}
	reqCtx.JSON(http.StatusOK, toUserResponse(updated))
}

// @Summary Forget the cached credential
// @Description Drops the cached credential mapping so the next request verifies it again.
// @Tags Users API
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} responses.ErrorResponse "Invalid credential"
// @Router /v1/users/me/logout [post]
func (route *UsersRoute) Logout(reqCtx *gin.Context) {
	credential, _ := auth.GetCredentialFromContext(reqCtx)
	if err := route.authService.Logout(reqCtx.Request.Context(), credential); err != nil {
		responses.AbortWithServiceError(reqCtx, err, "b6e9d2c4-1a8f-4c3b-a7e5-0d9f2b6c8a41")
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

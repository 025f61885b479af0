package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantrypal.app/pantry-api-gateway/app/domain/identity"
	"pantrypal.app/pantry-api-gateway/app/domain/user"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/requests"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/responses"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

type AuthService struct {
	resolver    *identity.Resolver
	userService *user.UserService
}

func NewAuthService(resolver *identity.Resolver, userService *user.UserService) *AuthService {
	return &AuthService{
		resolver:    resolver,
		userService: userService,
	}
}

type UserContextKey string

const (
	UserContextKeyEntity     UserContextKey = "UserContextKeyEntity"
	UserContextKeyID         UserContextKey = "UserContextKeyID"
	UserContextKeyCredential UserContextKey = "UserContextKeyCredential"
	UserContextKeyIdentity   UserContextKey = "UserContextKeyIdentity"
)

// ResolvedUserMiddleware turns the bearer credential into the internal user id.
func (s *AuthService) ResolvedUserMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		token, ok := requests.GetTokenFromBearer(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "8b0e5c6a-4f0e-4e8e-9a57-0c9d7f6f1f11",
				Error: "missing bearer credential",
			})
			return
		}
		userID, err := s.resolver.Resolve(reqCtx.Request.Context(), token)
		if err != nil {
			abortWithIdentityError(reqCtx, err)
			return
		}
		SetUserIDToContext(reqCtx, userID)
		SetCredentialToContext(reqCtx, token)
		reqCtx.Next()
	}
}

// RegisteredUserMiddleware loads the user record. It must run after
// ResolvedUserMiddleware.
func (s *AuthService) RegisteredUserMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		userID, ok := GetUserIDFromContext(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code: "3296ce86-783b-4c05-9fdb-930d3713024e",
			})
			return
		}
		u, err := s.userService.FindByID(reqCtx.Request.Context(), userID)
		if err != nil {
			reqCtx.AbortWithStatusJSON(http.StatusServiceUnavailable, responses.ErrorResponse{
				Code:  "6272df83-f538-421b-93ba-c2b6f6d39f39",
				Error: "user store unavailable",
			})
			return
		}
		if u == nil {
			reqCtx.AbortWithStatusJSON(http.StatusNotFound, responses.ErrorResponse{
				Code:  "b1ef40e7-9db9-477d-bb59-f3783585195d",
				Error: "user not found",
			})
			return
		}
		SetUserToContext(reqCtx, u)
		reqCtx.Next()
	}
}

// VerifiedIdentityMiddleware only verifies the credential. Used by
// registration where no internal user exists yet.
func (s *AuthService) VerifiedIdentityMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		token, ok := requests.GetTokenFromBearer(reqCtx)
		if !ok {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "c6d6bafd-b9f3-4ebb-9c90-a21b07308ebc",
				Error: "missing bearer credential",
			})
			return
		}
		verified, err := s.resolver.Verify(reqCtx.Request.Context(), token)
		if err != nil {
			abortWithIdentityError(reqCtx, err)
			return
		}
		reqCtx.Set(string(UserContextKeyIdentity), verified)
		SetCredentialToContext(reqCtx, token)
		reqCtx.Next()
	}
}

// Logout drops the cached mapping so the next request re-verifies.
func (s *AuthService) Logout(ctx context.Context, credential string) error {
	return s.resolver.Invalidate(ctx, credential)
}

func IdentityErrorStatus(err error) int {
	switch {
	case errors.Is(err, identity.ErrInvalidCredential), errors.Is(err, identity.ErrExpiredCredential):
		return http.StatusUnauthorized
	case errors.Is(err, identity.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, identity.ErrStoreUnavailable), errors.Is(err, identity.ErrVerifierUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithIdentityError(reqCtx *gin.Context, err error) {
	status := IdentityErrorStatus(err)
	switch status {
	case http.StatusUnauthorized:
		reqCtx.AbortWithStatusJSON(status, responses.ErrorResponse{
			Code:  "9d7a21c4-d94c-4451-841b-4d9333f86942",
			Error: err.Error(),
		})
	case http.StatusNotFound:
		reqCtx.AbortWithStatusJSON(status, responses.ErrorResponse{
			Code:  "5e2f7d0b-3c55-4f0c-8a0e-2d1b9c7e4a02",
			Error: "user not found",
		})
	case http.StatusServiceUnavailable:
		logger.GetLogger().Errorf("identity resolution failed: %v", err)
		message := "identity store unavailable"
		if errors.Is(err, identity.ErrVerifierUnavailable) {
			message = "credential verification unavailable, retry later"
		}
		reqCtx.Header("Retry-After", "5")
		reqCtx.AbortWithStatusJSON(status, responses.ErrorResponse{
			Code:  "e4c1a9d2-7b36-4f51-9d0a-6a8f3b2c5e19",
			Error: message,
		})
	default:
		logger.GetLogger().Errorf("identity verification returned an unusable result: %v", err)
		reqCtx.AbortWithStatusJSON(status, responses.ErrorResponse{
			Code:  "0f6d3b8e-91a4-4c27-b5e3-7d2a6c1f8b40",
			Error: "identity verification failed",
		})
	}
}

func GetUserFromContext(reqCtx *gin.Context) (*user.User, bool) {
	v, ok := reqCtx.Get(string(UserContextKeyEntity))
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}

func SetUserToContext(reqCtx *gin.Context, u *user.User) {
	reqCtx.Set(string(UserContextKeyEntity), u)
}

func GetUserIDFromContext(reqCtx *gin.Context) (uint, bool) {
	v, ok := reqCtx.Get(string(UserContextKeyID))
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

func SetUserIDToContext(reqCtx *gin.Context, v uint) {
	reqCtx.Set(string(UserContextKeyID), v)
}

func GetCredentialFromContext(reqCtx *gin.Context) (string, bool) {
	v, ok := reqCtx.Get(string(UserContextKeyCredential))
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func SetCredentialToContext(reqCtx *gin.Context, credential string) {
	reqCtx.Set(string(UserContextKeyCredential), credential)
}

func GetVerifiedIdentityFromContext(reqCtx *gin.Context) (*identity.VerifiedIdentity, bool) {
	v, ok := reqCtx.Get(string(UserContextKeyIdentity))
	if !ok {
		return nil, false
	}
	verified, ok := v.(*identity.VerifiedIdentity)
	return verified, ok
}

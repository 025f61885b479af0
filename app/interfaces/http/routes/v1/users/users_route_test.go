package users_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/routetest"
	"pantrypal.app/pantry-api-gateway/app/interfaces/http/routes/v1/users"
)

func newRouter(t *testing.T) (*gin.Engine, *routetest.Fixture) {
	fx := routetest.NewFixture(t)
	router := gin.New()
	users.NewUsersRoute(fx.Users, fx.Auth).RegisterRouter(router.Group("/v1"))
	return router, fx
}

func TestRegisterCreatesThenReturnsExisting(t *testing.T) {
	router, _ := newRouter(t)

	rec := routetest.Do(t, router, http.MethodPost, "/v1/users", nil, routetest.NewToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := routetest.Decode[users.UserResponse](t, rec)
	assert.True(t, created.JustRegistered)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Equal(t, "user", created.Object)
	assert.NotEmpty(t, created.ID)

	rec = routetest.Do(t, router, http.MethodPost, "/v1/users", nil, routetest.NewToken)
	require.Equal(t, http.StatusOK, rec.Code)
	again := routetest.Decode[users.UserResponse](t, rec)
	assert.False(t, again.JustRegistered)
	assert.Equal(t, created.ID, again.ID)
}

func TestRegisterPrefersBodyEmail(t *testing.T) {
	router, _ := newRouter(t)

	rec := routetest.Do(t, router, http.MethodPost, "/v1/users", users.RegisterRequest{Email: "chosen@example.com"}, routetest.NewToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "chosen@example.com", routetest.Decode[users.UserResponse](t, rec).Email)
}

func TestRegisterRequiresCredential(t *testing.T) {
	router, _ := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, routetest.Do(t, router, http.MethodPost, "/v1/users", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, routetest.Do(t, router, http.MethodPost, "/v1/users", nil, "forged").Code)
}

func TestGetMe(t *testing.T) {
	router, fx := newRouter(t)

	rec := routetest.Do(t, router, http.MethodGet, "/v1/users/me", nil, routetest.KnownToken)
	require.Equal(t, http.StatusOK, rec.Code)
	me := routetest.Decode[users.UserResponse](t, rec)
	assert.Equal(t, fx.KnownUser.PublicID, me.ID)
	assert.False(t, me.HasDeviceToken)
}

func TestGetMeUnregistered(t *testing.T) {
	router, _ := newRouter(t)

	rec := routetest.Do(t, router, http.MethodGet, "/v1/users/me", nil, routetest.NewToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeviceTokenRegisterAndClear(t *testing.T) {
	router, _ := newRouter(t)

	rec := routetest.Do(t, router, http.MethodPut, "/v1/users/me/device-token", users.DeviceTokenRequest{DeviceToken: "abc123"}, routetest.KnownToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, routetest.Decode[users.UserResponse](t, rec).HasDeviceToken)

	rec = routetest.Do(t, router, http.MethodPut, "/v1/users/me/device-token", users.DeviceTokenRequest{}, routetest.KnownToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, routetest.Decode[users.UserResponse](t, rec).HasDeviceToken)
}

func TestDeviceTokenRejectsBadJSON(t *testing.T) {
	router, _ := newRouter(t)

	rec := routetest.Do(t, router, http.MethodPut, "/v1/users/me/device-token", "{", routetest.KnownToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutDropsCachedCredential(t *testing.T) {
	router, fx := newRouter(t)

	require.Equal(t, http.StatusOK, routetest.Do(t, router, http.MethodGet, "/v1/users/me", nil, routetest.KnownToken).Code)
	require.Equal(t, 1, fx.Store.Len())

	rec := routetest.Do(t, router, http.MethodPost, "/v1/users/me/logout", nil, routetest.KnownToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, fx.Store.Len())
}

package fatsecret

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/connect/token", func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if !ok || id != "client" || secret != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer","expires_in":86400}`))
	})
	mux.HandleFunc("/rest/food-categories/v2", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"food_categories":{"food_category":[
			{"food_category_id":"1","food_category_name":"Dairy","food_category_description":"Milk and cheese"},
			{"food_category_id":"7","food_category_name":"Fruit","food_category_description":""}]}}`))
	})
	mux.HandleFunc("/rest/food-sub-categories/v2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("food_category_id") == "1" {
			_, _ = w.Write([]byte(`{"food_sub_categories":{"food_sub_category":["Milk","Cheese"]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"food_sub_categories":{"food_sub_category":"Apples"}}`))
	})
	mux.HandleFunc("/rest/foods/search/v3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("search_expression") == "nothing" {
			_, _ = w.Write([]byte(`{"foods_search":{"results":{}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"foods_search":{"results":{"food":[
			{"food_name":"Cheddar","food_sub_categories":{"food_sub_category":["Cheese","Dairy Snacks"]}}]}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClientWithConfig(Config{
		ClientID:     "client",
		ClientSecret: "secret",
		TokenURL:     srv.URL + "/connect/token",
		BaseURL:      srv.URL + "/rest",
		HTTPClient:   srv.Client(),
	})
}

func TestFetchToken(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)

	tok, err := c.FetchToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok.Value)
	assert.False(t, tok.Expiry.IsZero())
}

func TestFetchTokenNotConfigured(t *testing.T) {
	c := NewClientWithConfig(Config{})
	_, err := c.FetchToken(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFoodCategories(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)

	cats, err := c.FoodCategories(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, FoodCategory{ID: 1, Name: "Dairy", Description: "Milk and cheese"}, cats[0])
	assert.Equal(t, int64(7), cats[1].ID)

	_, err = c.FoodCategories(context.Background(), "stale")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestFoodSubCategoriesAcceptsSingleString(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)

	subs, err := c.FoodSubCategories(context.Background(), "tok-1", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Cheese"}, subs)

	subs, err = c.FoodSubCategories(context.Background(), "tok-1", 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apples"}, subs)
}

func TestSearchFoodSubCategories(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv)

	subs, err := c.SearchFoodSubCategories(context.Background(), "tok-1", "cheddar")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheese", "Dairy Snacks"}, subs)

	subs, err = c.SearchFoodSubCategories(context.Background(), "tok-1", "nothing")
	require.NoError(t, err)
	assert.Nil(t, subs)
}

package fatsecret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"pantrypal.app/pantry-api-gateway/app/utils/httpclients"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
	"resty.dev/v3"
)

const (
	DefaultBaseURL  = "https://platform.fatsecret.com/rest"
	DefaultTokenURL = "https://oauth.fatsecret.com/connect/token"
)

var (
	ErrUnauthorized  = errors.New("fatsecret: access token rejected")
	ErrNotConfigured = errors.New("fatsecret: client credentials are not configured")
)

type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
	BaseURL      string
	HTTPClient   *http.Client
}

type AccessToken struct {
	Value string
	// Expiry is zero when the provider did not report a lifetime.
	Expiry time.Time
}

type FoodCategory struct {
	ID          int64
	Name        string
	Description string
}

type Client struct {
	rest        *resty.Client
	credentials clientcredentials.Config
	httpClient  *http.Client
}

func NewClient() *Client {
	envs := environment_variables.EnvironmentVariables
	return NewClientWithConfig(Config{
		ClientID:     envs.FATSECRET_CLIENT_ID,
		ClientSecret: envs.FATSECRET_CLIENT_SECRET,
		TokenURL:     envs.FATSECRET_TOKEN_URL,
		Scopes:       envs.FATSECRET_SCOPE,
		BaseURL:      envs.FATSECRET_BASE_URL,
	})
}

func NewClientWithConfig(cfg Config) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"basic"}
	}
	var rest *resty.Client
	if cfg.HTTPClient != nil {
		rest = httpclients.NewClientWithTransport("FatSecretClient", cfg.HTTPClient.Transport)
	} else {
		rest = httpclients.NewClient("FatSecretClient")
	}
	rest.SetBaseURL(cfg.BaseURL).SetTimeout(15 * time.Second)
	return &Client{
		rest: rest,
		credentials: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: cfg.HTTPClient,
	}
}

// FetchToken runs the client credentials grant with basic auth.
func (c *Client) FetchToken(ctx context.Context) (*AccessToken, error) {
	if c.credentials.ClientID == "" || c.credentials.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	tok, err := c.credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("fatsecret token request: %w", err)
	}
	return &AccessToken{Value: tok.AccessToken, Expiry: tok.Expiry}, nil
}

type categoriesResponse struct {
	FoodCategories struct {
		FoodCategory []struct {
			ID          string `json:"food_category_id"`
			Name        string `json:"food_category_name"`
			Description string `json:"food_category_description"`
		} `json:"food_category"`
	} `json:"food_categories"`
}

type subCategoriesResponse struct {
	FoodSubCategories struct {
		FoodSubCategory stringList `json:"food_sub_category"`
	} `json:"food_sub_categories"`
}

type foodSearchResponse struct {
	FoodsSearch struct {
		Results struct {
			Food []struct {
				FoodName          string `json:"food_name"`
				FoodSubCategories struct {
					FoodSubCategory stringList `json:"food_sub_category"`
				} `json:"food_sub_categories"`
			} `json:"food"`
		} `json:"results"`
	} `json:"foods_search"`
}

func (c *Client) FoodCategories(ctx context.Context, token string) ([]FoodCategory, error) {
	var result categoriesResponse
	if err := c.get(ctx, token, "/food-categories/v2", map[string]string{"format": "json"}, &result); err != nil {
		return nil, err
	}
	categories := make([]FoodCategory, 0, len(result.FoodCategories.FoodCategory))
	for _, cat := range result.FoodCategories.FoodCategory {
		id, err := strconv.ParseInt(cat.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fatsecret category id %q: %w", cat.ID, err)
		}
		categories = append(categories, FoodCategory{ID: id, Name: cat.Name, Description: cat.Description})
	}
	return categories, nil
}

func (c *Client) FoodSubCategories(ctx context.Context, token string, categoryID int64) ([]string, error) {
	var result subCategoriesResponse
	params := map[string]string{
		"format":           "json",
		"food_category_id": strconv.FormatInt(categoryID, 10),
	}
	if err := c.get(ctx, token, "/food-sub-categories/v2", params, &result); err != nil {
		return nil, err
	}
	return result.FoodSubCategories.FoodSubCategory, nil
}

// SearchFoodSubCategories returns the sub categories of the best match for
// the expression, or nil when nothing matched.
func (c *Client) SearchFoodSubCategories(ctx context.Context, token string, expression string) ([]string, error) {
	var result foodSearchResponse
	params := map[string]string{
		"search_expression":      expression,
		"include_sub_categories": "true",
		"include_food_images":    "false",
		"max_results":            "1",
		"format":                 "json",
	}
	if err := c.get(ctx, token, "/foods/search/v3", params, &result); err != nil {
		return nil, err
	}
	foods := result.FoodsSearch.Results.Food
	if len(foods) == 0 {
		return nil, nil
	}
	return foods[0].FoodSubCategories.FoodSubCategory, nil
}

func (c *Client) get(ctx context.Context, token string, path string, params map[string]string, out any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.IsError() {
		return fmt.Errorf("fatsecret API error: %s", resp.Status())
	}
	return nil
}

// stringList accepts both a JSON array and a bare string, FatSecret collapses
// single element lists.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

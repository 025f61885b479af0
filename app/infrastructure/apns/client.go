package apns

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/net/http2"
	"pantrypal.app/pantry-api-gateway/app/domain/notification"
	"pantrypal.app/pantry-api-gateway/app/utils/httpclients"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
	"resty.dev/v3"
)

const (
	ProductionHost = "https://api.push.apple.com"
	SandboxHost    = "https://api.sandbox.push.apple.com"

	// Apple rejects provider tokens older than an hour.
	providerTokenLifetime = 50 * time.Minute
)

var ErrNotConfigured = errors.New("apns: signing key is not configured")

type Config struct {
	KeyID   string
	TeamID  string
	Topic   string
	Sandbox bool
	// Host overrides the Apple host selected by Sandbox.
	Host       string
	SigningKey *ecdsa.PrivateKey
	Transport  http.RoundTripper
}

type Client struct {
	rest   *resty.Client
	config Config
	now    func() time.Time

	mu          sync.Mutex
	bearer      string
	bearerIssue time.Time
}

var _ notification.Pusher = (*Client)(nil)

// NewClient loads the .p8 key named by APNS_KEY_PATH. A missing key leaves the
// client unconfigured so the notifier can fall back to e-mail.
func NewClient() *Client {
	envs := environment_variables.EnvironmentVariables
	cfg := Config{
		KeyID:   envs.APNS_KEY_ID,
		TeamID:  envs.APNS_TEAM_ID,
		Topic:   envs.APNS_TOPIC,
		Sandbox: envs.APNS_SANDBOX,
	}
	if envs.APNS_KEY_PATH != "" {
		key, err := LoadSigningKey(envs.APNS_KEY_PATH)
		if err != nil {
			logger.GetLogger().
				WithField("error_code", "6f0d2a0c-5d1b-4f43-8d7e-0e5a61c5b9a4").
				Errorf("unable to load APNs signing key: %v", err)
		} else {
			cfg.SigningKey = key
		}
	}
	return NewClientWithConfig(cfg)
}

func NewClientWithConfig(cfg Config) *Client {
	if cfg.Host == "" {
		cfg.Host = ProductionHost
		if cfg.Sandbox {
			cfg.Host = SandboxHost
		}
	}
	if cfg.Transport == nil {
		cfg.Transport = &http2.Transport{}
	}
	rest := httpclients.NewClientWithTransport("APNsClient", cfg.Transport)
	rest.SetBaseURL(cfg.Host).SetTimeout(10 * time.Second)
	return &Client{
		rest:   rest,
		config: cfg,
		now:    time.Now,
	}
}

func LoadSigningKey(path string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseECPrivateKeyFromPEM(data)
}

func (c *Client) Configured() bool {
	return c != nil && c.config.SigningKey != nil && c.config.KeyID != "" && c.config.TeamID != "" && c.config.Topic != ""
}

type aps struct {
	Alert string `json:"alert"`
	Sound string `json:"sound,omitempty"`
	Badge int    `json:"badge"`
}

type payload struct {
	Aps aps `json:"aps"`
}

type errorBody struct {
	Reason string `json:"reason"`
}

func (c *Client) Push(ctx context.Context, deviceToken string, msg notification.Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	bearer, err := c.providerToken()
	if err != nil {
		return err
	}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(bearer).
		SetHeader("apns-topic", c.config.Topic).
		SetHeader("apns-push-type", "alert").
		SetHeader("Content-Type", "application/json").
		SetBody(payload{Aps: aps{Alert: msg.Alert, Sound: msg.Sound, Badge: msg.Badge}}).
		Post("/3/device/" + deviceToken)
	if err != nil {
		return fmt.Errorf("apns request: %w", err)
	}
	if resp.StatusCode() == http.StatusOK {
		return nil
	}
	var body errorBody
	_ = json.Unmarshal([]byte(resp.String()), &body)
	if resp.StatusCode() == http.StatusForbidden && body.Reason == "ExpiredProviderToken" {
		c.resetProviderToken()
	}
	return fmt.Errorf("apns rejected notification: %d %s", resp.StatusCode(), body.Reason)
}

// providerToken returns the cached ES256 token, signing a new one once it is
// older than providerTokenLifetime.
func (c *Client) providerToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if c.bearer != "" && now.Sub(c.bearerIssue) < providerTokenLifetime {
		return c.bearer, nil
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": c.config.TeamID,
		"iat": now.Unix(),
	})
	token.Header["kid"] = c.config.KeyID
	signed, err := token.SignedString(c.config.SigningKey)
	if err != nil {
		return "", fmt.Errorf("apns provider token: %w", err)
	}
	c.bearer = signed
	c.bearerIssue = now
	return signed, nil
}

func (c *Client) resetProviderToken() {
	c.mu.Lock()
	c.bearer = ""
	c.mu.Unlock()
}

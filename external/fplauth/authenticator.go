// Package fplauth exchanges fantasy-game account credentials for an API
// bearer token.
package fplauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

// ErrBadCredentials is returned when the identity provider rejects the
// email/password pair.
var ErrBadCredentials = crerr.New("invalid email or password")

type Config struct {
	HTTPClient  *http.Client
	LoginURL    string
	RedirectURI string
	AppName     string
	Timeout     time.Duration
	Logger      *logging.Logger
}

// TokenClient logs in against the game's identity provider and extracts the
// access token from the response. Credentials are never logged and never
// stored; only the token leaves this package.
type TokenClient struct {
	httpClient  *http.Client
	loginURL    string
	redirectURI string
	appName     string
	logger      *logging.Logger
}

var _ usecase.Authenticator = (*TokenClient)(nil)

func NewTokenClient(cfg Config) *TokenClient {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = "plfpl-web"
	}

	return &TokenClient{
		httpClient:  httpClient,
		loginURL:    strings.TrimSpace(cfg.LoginURL),
		redirectURI: strings.TrimSpace(cfg.RedirectURI),
		appName:     appName,
		logger:      logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// Login posts the credential form and returns the raw access token.
func (c *TokenClient) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrBadCredentials)
	}

	form := url.Values{}
	form.Set("login", email)
	form.Set("password", password)
	form.Set("app", c.appName)
	form.Set("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send login request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read login response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.WarnContext(ctx, "login rejected by identity provider", "status", resp.StatusCode)
		return "", ErrBadCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("identity provider status=%d", resp.StatusCode)
	}

	var payload tokenResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.Error != "" {
		if strings.Contains(strings.ToLower(payload.Error), "credential") ||
			strings.Contains(strings.ToLower(payload.Description), "credential") {
			return "", ErrBadCredentials
		}
		return "", fmt.Errorf("identity provider error: %s", payload.Error)
	}
	if payload.AccessToken == "" {
		return "", crerr.New("token response carried no access token")
	}

	return payload.AccessToken, nil
}

// Package fpl is the REST gateway to the fantasy game's API.
package fpl

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
	"github.com/riskibarqy/fpl-assistant/internal/platform/resilience"
	"github.com/riskibarqy/fpl-assistant/internal/usecase"
)

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "Mozilla/5.0"
	maxBodyBytes     = 16 << 20
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the fantasy API. The zero token form serves the public
// endpoints; Authenticated derives a token-carrying copy that shares the
// transport, breaker, and singleflight group.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         *resilience.SingleFlight
}

var _ usecase.Gateway = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		flight:         &resilience.SingleFlight{},
	}
}

// Authenticated returns a gateway carrying the bearer token. Transport,
// breaker, and in-flight deduplication stay shared with the base client.
func (c *Client) Authenticated(token string) usecase.Gateway {
	token = strings.TrimSpace(token)
	if token != "" && !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}

	derived := *c
	derived.token = token
	return &derived
}

func (c *Client) FetchBootstrap(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, "/bootstrap-static/")
}

func (c *Client) FetchFixtures(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, "/fixtures/")
}

func (c *Client) AccountInfo(ctx context.Context) (usecase.AccountInfo, error) {
	var payload mePayload
	if err := c.getJSON(ctx, "/me/", &payload); err != nil {
		return usecase.AccountInfo{}, err
	}
	return mapAccountInfo(payload), nil
}

func (c *Client) MyTeam(ctx context.Context, entryID int) (usecase.MyTeam, error) {
	var payload myTeamPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/my-team/%d/", entryID), &payload); err != nil {
		return usecase.MyTeam{}, err
	}
	return mapMyTeam(payload), nil
}

func (c *Client) ManagerEntry(ctx context.Context, entryID int) (usecase.ManagerEntry, error) {
	var payload entryPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/entry/%d/", entryID), &payload); err != nil {
		return usecase.ManagerEntry{}, err
	}
	return mapManagerEntry(payload), nil
}

func (c *Client) LeagueStandings(ctx context.Context, leagueID, page int) (usecase.LeagueStandings, error) {
	if page < 1 {
		page = 1
	}
	var payload standingsPayload
	path := fmt.Sprintf("/leagues-classic/%d/standings/?page_standings=%d", leagueID, page)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return usecase.LeagueStandings{}, err
	}
	return mapLeagueStandings(payload, page), nil
}

func (c *Client) ManagerPicks(ctx context.Context, entryID, gameweek int) (usecase.ManagerPicks, error) {
	var payload picksPayload
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gameweek)
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return usecase.ManagerPicks{}, err
	}
	return mapManagerPicks(payload), nil
}

func (c *Client) ElementSummary(ctx context.Context, playerID int) (usecase.ElementSummary, error) {
	var payload elementSummaryPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/element-summary/%d/", playerID), &payload); err != nil {
		return usecase.ElementSummary{}, err
	}
	return mapElementSummary(payload), nil
}

// ExecuteTransfers posts a transfer batch. The call is irreversible
// upstream, so it goes out exactly once: no retries, no deduplication.
func (c *Client) ExecuteTransfers(ctx context.Context, payload usecase.TransferPayload) (string, error) {
	if err := c.allow(ctx); err != nil {
		return "", err
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode transfer payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(fmt.Errorf("%w: send request: %v", errFPLTransient, err))
		return "", fmt.Errorf("send transfer request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.record(fmt.Errorf("%w: read response body: %v", errFPLTransient, err))
		return "", fmt.Errorf("read transfer response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("transfer rejected status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		if isRetryableStatus(resp.StatusCode) {
			err = fmt.Errorf("%w: %v", errFPLTransient, err)
		}
		c.record(err)
		return "", err
	}
	c.record(nil)

	return strings.TrimSpace(string(raw)), nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode payload for %s: %w", path, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	if err := c.allow(ctx); err != nil {
		return nil, err
	}

	// Deduplicate per token so an authenticated read never satisfies an
	// anonymous one.
	key := c.token + "|" + path
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, c.baseURL+path)
		c.record(reqErr)
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: upstream status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("upstream request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("user-agent", defaultUserAgent)
	if c.token != "" {
		req.Header.Set("authorization", c.token)
		req.Header.Set("x-api-authorization", c.token)
	}
}

func (c *Client) allow(ctx context.Context) error {
	if !c.circuitEnabled {
		return nil
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: fantasy API is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return nil
}

func (c *Client) record(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

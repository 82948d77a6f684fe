// Package naruapi is a client for the 도서관 정보나루 (data4library) catalog
// API: title/ISBN search and per-branch loan availability. The upstream data
// is refreshed daily, so answers reflect the previous day, not live stock.
package naruapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://data4library.kr/api"

// The catalog is a shared public service and this is a personal-scale
// workload: the limiter is a courtesy throttle, not admission control.
const (
	requestsPerSecond = 2
	requestTimeout    = 10 * time.Second
)

// Client issues authenticated requests against the catalog API. One limiter
// covers search and availability calls alike, which also paces the
// monitor's per-entry checks.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authKey    string
	limiter    *rate.Limiter
	log        *slog.Logger
}

func NewClient(authKey string, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		authKey:    authKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/requestsPerSecond), 1),
		log:        log,
	}
}

// get performs one GET against an endpoint and decodes the response
// envelope. An "error" field inside the envelope counts as a failure.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle: %w", err)
	}

	params.Set("authKey", c.authKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Response.Error != "" {
		return nil, fmt.Errorf("api error: %s", env.Response.Error)
	}
	return &env.Response, nil
}

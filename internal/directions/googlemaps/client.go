// Package googlemaps provides a client for the Google Maps Directions API.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenways/greenways/internal/directions"
	"github.com/greenways/greenways/internal/provider/resilience"
)

const (
	// ProviderName identifies this directions provider.
	ProviderName = "googlemaps"

	// DefaultBaseURL is the Directions API base URL.
	DefaultBaseURL = "https://maps.googleapis.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Google Maps client.
type ClientConfig struct {
	// APIKey is the Directions API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Maps Directions API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Google Maps client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetRoute retrieves the best route between two places for one travel mode.
func (c *Client) GetRoute(ctx context.Context, req directions.Request) (*directions.Route, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, &directions.Error{
			Provider: ProviderName,
			Code:     "MISSING_PLACES",
			Message:  "origin and destination are required",
			Err:      directions.ErrInvalidRequest,
		}
	}

	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Destination)
	params.Set("mode", req.Mode)
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/maps/api/directions/json?%s", c.baseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("mode", req.Mode).
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Msg("requesting directions from Google Maps")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &directions.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach directions provider",
			Err:      directions.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			return nil, &directions.Error{
				Provider: ProviderName,
				Code:     fmt.Sprintf("SERVER_%d", resp.StatusCode),
				Message:  "directions provider is temporarily unavailable",
				Err:      directions.ErrProviderUnavailable,
			}
		}
		return nil, &directions.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  fmt.Sprintf("directions provider returned status %d", resp.StatusCode),
			Err:      directions.ErrProviderUnavailable,
		}
	}

	var gmResp gmResponse
	if err := json.Unmarshal(respBody, &gmResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// The API reports errors in the body with HTTP 200.
	if gmResp.Status != statusOK || len(gmResp.Routes) == 0 {
		return nil, c.handleStatus(&gmResp)
	}

	route := c.toRoute(&gmResp)

	c.logger.Debug().
		Str("mode", req.Mode).
		Int64("distance_m", route.Distance.Value).
		Int64("duration_s", route.Duration.Value).
		Msg("received directions from Google Maps")

	return route, nil
}

// handleStatus maps Directions API status codes to domain errors.
func (c *Client) handleStatus(resp *gmResponse) error {
	message := resp.ErrorMessage
	if message == "" {
		message = fmt.Sprintf("directions provider returned status %s", resp.Status)
	}

	switch resp.Status {
	case statusOK, statusZeroResults, statusNotFound:
		// OK with no routes behaves the same as ZERO_RESULTS.
		return &directions.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "no route found between the given places",
			Err:      directions.ErrNoRouteFound,
		}
	case statusOverQueryLimit, statusOverDailyLimit:
		return &directions.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "API rate limit exceeded, please try again later",
			Err:      directions.ErrRateLimitExceeded,
		}
	case statusRequestDenied:
		return &directions.Error{
			Provider: ProviderName,
			Code:     "REQUEST_DENIED",
			Message:  "API access denied - check API key configuration",
			Err:      directions.ErrProviderUnavailable,
		}
	case statusInvalidRequest:
		return &directions.Error{
			Provider: ProviderName,
			Code:     "INVALID_REQUEST",
			Message:  message,
			Err:      directions.ErrInvalidRequest,
		}
	default:
		return &directions.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  message,
			Err:      directions.ErrProviderUnavailable,
		}
	}
}

// toRoute converts the provider response to the domain model. Only the
// first route alternative and its single leg are used.
func (c *Client) toRoute(resp *gmResponse) *directions.Route {
	gmRoute := &resp.Routes[0]

	route := &directions.Route{
		Polyline:  gmRoute.OverviewPolyline.Points,
		Provider:  ProviderName,
		FetchedAt: time.Now(),
	}

	if len(gmRoute.Legs) > 0 {
		leg := &gmRoute.Legs[0]
		route.Origin = leg.StartAddress
		route.Destination = leg.EndAddress
		route.Distance = directions.TextValue{Text: leg.Distance.Text, Value: leg.Distance.Value}
		route.Duration = directions.TextValue{Text: leg.Duration.Text, Value: leg.Duration.Value}
		route.Steps = leg.Steps
	}

	return route
}

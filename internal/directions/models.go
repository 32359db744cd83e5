// Package directions provides single-mode route retrieval from an
// external directions provider.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Sentinel errors for directions operations.
var (
	// ErrProviderUnavailable indicates the directions provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("directions provider unavailable")
	// ErrNoRouteFound indicates no valid route exists between the given places.
	ErrNoRouteFound = errors.New("no route found between the given places")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidRequest indicates the origin, destination or mode was rejected by the provider.
	ErrInvalidRequest = errors.New("invalid directions request")
)

// Provider defines the interface for directions providers.
type Provider interface {
	// GetRoute retrieves the best route between two places for one
	// travel mode.
	GetRoute(ctx context.Context, req Request) (*Route, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Request is the request for a single-mode route lookup. Origin and
// Destination are free-text place names or addresses; the provider
// geocodes them.
type Request struct {
	Origin      string
	Destination string
	Mode        string // provider travel mode: driving, walking, bicycling, transit
}

// TextValue pairs a human-readable rendering with a numeric value, the
// way the provider reports distances (meters) and durations (seconds).
type TextValue struct {
	Text  string
	Value int64
}

// Route is a single resolved route.
type Route struct {
	Origin      string // resolved start address
	Destination string // resolved end address
	Distance    TextValue
	Duration    TextValue
	Steps       json.RawMessage // provider step objects, passed through untouched
	Polyline    string          // encoded overview polyline (precision 5)
	Provider    string
	FetchedAt   time.Time
}

// Error provides detailed error information from the directions provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient and the request can be retried.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}

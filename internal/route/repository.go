package route

import (
	"context"
	"errors"
)

// ErrRouteNotFound is returned when a saved route does not exist.
var ErrRouteNotFound = errors.New("route not found")

// Repository defines the interface for saved-route data operations.
type Repository interface {
	// Create persists a new saved route.
	Create(ctx context.Context, route *SavedRoute) error

	// ListByUser returns all routes saved by a user, most recent first.
	ListByUser(ctx context.Context, userID string) ([]SavedRoute, error)

	// Delete removes a saved route and returns it.
	// Returns ErrRouteNotFound if the route does not exist.
	Delete(ctx context.Context, routeID string) (*SavedRoute, error)

	// ListRecentPairs returns distinct origin/destination pairs ordered by
	// each pair's latest save, newest first, up to the given limit.
	ListRecentPairs(ctx context.Context, limit int) ([]Pair, error)
}

package route

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository for testing.
type InMemoryRepository struct {
	mu     sync.RWMutex
	routes map[string]*SavedRoute
	order  []string // insertion order, oldest first
}

// NewInMemoryRepository creates a new in-memory saved-route repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		routes: make(map[string]*SavedRoute),
	}
}

// Create persists a new saved route.
func (r *InMemoryRepository) Create(ctx context.Context, route *SavedRoute) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *route
	r.routes[route.ID] = &saved
	r.order = append(r.order, route.ID)
	return nil
}

// ListByUser returns all routes saved by a user, most recent first.
func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]SavedRoute, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]SavedRoute, 0)
	for _, route := range r.routes {
		if route.UserID == userID {
			routes = append(routes, *route)
		}
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].CreatedAt.After(routes[j].CreatedAt)
	})

	return routes, nil
}

// Delete removes a saved route and returns it.
func (r *InMemoryRepository) Delete(ctx context.Context, routeID string) (*SavedRoute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	route, ok := r.routes[routeID]
	if !ok {
		return nil, ErrRouteNotFound
	}

	delete(r.routes, routeID)
	for i, id := range r.order {
		if id == routeID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	deleted := *route
	return &deleted, nil
}

// ListRecentPairs returns distinct origin/destination pairs from
// recently saved routes.
func (r *InMemoryRepository) ListRecentPairs(ctx context.Context, limit int) ([]Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Pair]struct{})
	pairs := make([]Pair, 0, limit)

	// Walk newest first
	for i := len(r.order) - 1; i >= 0 && len(pairs) < limit; i-- {
		route := r.routes[r.order[i]]
		pair := Pair{Origin: route.Origin, Destination: route.Destination}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)

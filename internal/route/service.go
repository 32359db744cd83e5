package route

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/greenways/greenways/internal/api/models"
)

// ErrStoreUnavailable is returned when the route store cannot be
// reached even after an inline reconnect attempt.
var ErrStoreUnavailable = errors.New("route store unavailable")

// StoreMonitor reports store connectivity. Satisfied by
// *database.Monitor.
type StoreMonitor interface {
	// EnsureReady returns nil when the store is reachable, making one
	// inline probe if the cached state says otherwise.
	EnsureReady(ctx context.Context) error
}

// Service handles saved-route operations. Every operation checks store
// connectivity first so an outage surfaces as ErrStoreUnavailable
// instead of a raw driver error.
type Service struct {
	repo    Repository
	monitor StoreMonitor
	logger  zerolog.Logger
}

// NewService creates a new saved-route service.
func NewService(repo Repository, monitor StoreMonitor, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		monitor: monitor,
		logger:  logger.With().Str("component", "route_service").Logger(),
	}
}

// Save persists a route chosen by the user. The ID and timestamp are
// assigned server-side.
func (s *Service) Save(ctx context.Context, userID string, input *models.SavedRouteInput) (*models.SavedRoute, error) {
	if err := s.ensureStore(ctx); err != nil {
		return nil, err
	}

	saved := &SavedRoute{
		ID:             generateRouteID(),
		UserID:         userID,
		Origin:         input.Origin,
		Destination:    input.Destination,
		DistanceText:   input.Distance.Text,
		DistanceValue:  input.Distance.Value,
		DurationText:   input.Duration.Text,
		DurationValue:  input.Duration.Value,
		Mode:           string(input.Mode),
		CarbonEmission: input.CarbonEmission,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, fmt.Errorf("saving route: %w", err)
	}

	s.logger.Info().
		Str("route_id", saved.ID).
		Str("user_id", userID).
		Str("mode", saved.Mode).
		Msg("Route saved")

	api := saved.ToAPI()
	return &api, nil
}

// ListByUser returns a user's saved routes, most recent first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.SavedRoute, error) {
	if err := s.ensureStore(ctx); err != nil {
		return nil, err
	}

	routes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}

	result := make([]models.SavedRoute, 0, len(routes))
	for i := range routes {
		result = append(result, routes[i].ToAPI())
	}
	return result, nil
}

// Delete removes a saved route and returns it. Returns ErrRouteNotFound
// if no route with the given ID exists.
func (s *Service) Delete(ctx context.Context, routeID string) (*models.SavedRoute, error) {
	if err := s.ensureStore(ctx); err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, routeID)
	if err != nil {
		if errors.Is(err, ErrRouteNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, fmt.Errorf("deleting route: %w", err)
	}

	s.logger.Info().
		Str("route_id", routeID).
		Str("user_id", deleted.UserID).
		Msg("Route deleted")

	api := deleted.ToAPI()
	return &api, nil
}

// RecentPairs returns distinct origin/destination pairs from recently
// saved routes, used to pre-warm the directions cache.
func (s *Service) RecentPairs(ctx context.Context, limit int) ([]Pair, error) {
	if err := s.ensureStore(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListRecentPairs(ctx, limit)
}

// ensureStore maps a failed connectivity check to ErrStoreUnavailable.
func (s *Service) ensureStore(ctx context.Context) error {
	if s.monitor == nil {
		return nil
	}
	if err := s.monitor.EnsureReady(ctx); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}

// generateRouteID generates a prefixed route ID.
func generateRouteID() string {
	return "rte_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:22]
}

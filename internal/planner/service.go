package planner

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/greenways/greenways/internal/api/models"
	"github.com/greenways/greenways/internal/directions"
	"github.com/greenways/greenways/pkg/polyline"
)

// DirectionsService retrieves single-mode routes. Satisfied by
// *directions.Service.
type DirectionsService interface {
	GetRoute(ctx context.Context, req directions.Request) (*directions.Route, error)
}

// Service plans multi-mode route options.
type Service struct {
	directions DirectionsService
	logger     zerolog.Logger
}

// NewService creates a new planner service.
func NewService(directionsService DirectionsService, logger zerolog.Logger) *Service {
	return &Service{
		directions: directionsService,
		logger:     logger.With().Str("component", "planner_service").Logger(),
	}
}

// PlanRoutes queries all base travel modes concurrently, annotates each
// route with its emission estimate, appends derived modes, flags the
// fastest and greenest options and generates recommendations.
//
// A mode the provider cannot serve (no bicycle route between the
// places, say) is dropped from the result rather than failing the whole
// request. An empty route set is a valid response.
func (s *Service) PlanRoutes(ctx context.Context, origin, destination string) *models.RouteOptionsResponse {
	results := make([]*models.RouteOption, len(models.BaseModes))

	var wg sync.WaitGroup
	for i, mode := range models.BaseModes {
		wg.Add(1)
		go func(i int, mode models.Mode) {
			defer wg.Done()

			route, err := s.directions.GetRoute(ctx, directions.Request{
				Origin:      origin,
				Destination: destination,
				Mode:        string(mode),
			})
			if err != nil {
				s.logger.Warn().Err(err).
					Str("mode", string(mode)).
					Str("origin", origin).
					Str("destination", destination).
					Msg("Dropping mode from route options")
				return
			}

			opt := toRouteOption(route, mode)
			results[i] = &opt
		}(i, mode)
	}
	wg.Wait()

	// Join in query order, skipping failed modes
	routes := make([]models.RouteOption, 0, len(results))
	for _, r := range results {
		if r != nil {
			routes = append(routes, *r)
		}
	}

	routes = synthesizeDerivedModes(routes)
	rankRoutes(routes)

	return &models.RouteOptionsResponse{
		Routes:          routes,
		Recommendations: generateRecommendations(routes),
	}
}

// toRouteOption converts a provider route into an annotated route option.
func toRouteOption(route *directions.Route, mode models.Mode) models.RouteOption {
	opt := models.RouteOption{
		Origin:      route.Origin,
		Destination: route.Destination,
		Distance:    models.TextValue{Text: route.Distance.Text, Value: route.Distance.Value},
		Duration:    models.TextValue{Text: route.Duration.Text, Value: route.Duration.Value},
		Steps:       route.Steps,
		Polyline:    route.Polyline,
		Mode:        mode,
	}

	opt.CarbonEmission = EstimateEmission(float64(route.Distance.Value)/1000, mode)

	if route.Polyline != "" {
		if bounds := polyline.BoundsOf(polyline.Decode(route.Polyline)); bounds != nil {
			opt.Bounds = &models.GeoBox{
				MinLat: bounds.MinLat,
				MinLon: bounds.MinLon,
				MaxLat: bounds.MaxLat,
				MaxLon: bounds.MaxLon,
			}
		}
	}

	return opt
}

package planner

import "github.com/greenways/greenways/internal/api/models"

// rankRoutes flags the fastest and greenest routes in place. Every route
// tied at the minimum duration is flagged fastest and every route tied
// at the minimum emission is flagged greenest, so multi-way ties (two
// zero-emission modes, say) all carry the flag. An empty slice is a
// no-op.
func rankRoutes(routes []models.RouteOption) {
	if len(routes) == 0 {
		return
	}

	minDuration := routes[0].Duration.Value
	minEmission := routes[0].CarbonEmission
	for i := range routes[1:] {
		r := &routes[i+1]
		if r.Duration.Value < minDuration {
			minDuration = r.Duration.Value
		}
		if r.CarbonEmission < minEmission {
			minEmission = r.CarbonEmission
		}
	}

	for i := range routes {
		routes[i].IsFastest = routes[i].Duration.Value == minDuration
		routes[i].IsGreenest = routes[i].CarbonEmission == minEmission
	}
}

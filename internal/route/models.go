// Package route provides persistence for user-saved routes.
package route

import (
	"time"

	"github.com/greenways/greenways/internal/api/models"
)

// SavedRoute is a route a user chose to keep.
type SavedRoute struct {
	ID             string
	UserID         string
	Origin         string
	Destination    string
	DistanceText   string
	DistanceValue  int64
	DurationText   string
	DurationValue  int64
	Mode           string
	CarbonEmission float64
	CreatedAt      time.Time
}

// Pair is an origin/destination pair, used to pre-warm the directions
// cache for places users actually travel between.
type Pair struct {
	Origin      string
	Destination string
}

// ToAPI converts a saved route to its API representation.
func (s *SavedRoute) ToAPI() models.SavedRoute {
	return models.SavedRoute{
		ID:             s.ID,
		UserID:         s.UserID,
		Origin:         s.Origin,
		Destination:    s.Destination,
		Distance:       models.TextValue{Text: s.DistanceText, Value: s.DistanceValue},
		Duration:       models.TextValue{Text: s.DurationText, Value: s.DurationValue},
		Mode:           models.Mode(s.Mode),
		CarbonEmission: s.CarbonEmission,
		Date:           models.Timestamp(s.CreatedAt),
	}
}

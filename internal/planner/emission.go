// Package planner computes multi-mode route options with carbon
// emission estimates, derived modes, extreme flagging and greener-travel
// recommendations.
package planner

import (
	"math"

	"github.com/greenways/greenways/internal/api/models"
)

// emissionFactors holds kg CO2 per km per transportation mode.
var emissionFactors = map[models.Mode]float64{
	models.ModeDriving:   0.192, // average car
	models.ModeTransit:   0.050,
	models.ModeBicycling: 0.0,
	models.ModeWalking:   0.0,
	models.ModeTrain:     0.035,
	models.ModeBus:       0.068,
	models.ModeAirplane:  0.255,
	// Assumes 2 people in a car. No caller requests carpooling routes
	// today; the factor is kept for the carpooling recommendation text
	// and a future carpooling mode.
	models.ModeCarpooling: 0.096,
}

// EstimateEmission returns the estimated kg CO2 for traveling the given
// distance with the given mode, rounded to 2 decimal places. Unknown
// modes fall back to the driving factor.
func EstimateEmission(distanceKm float64, mode models.Mode) float64 {
	factor, ok := emissionFactors[mode]
	if !ok {
		factor = emissionFactors[models.ModeDriving]
	}
	return round2(distanceKm * factor)
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package planner

import (
	"fmt"

	"github.com/greenways/greenways/internal/api/models"
)

// Baseline recommendations included in every response.
const (
	recCarpooling = "Consider carpooling to reduce per-person carbon emissions."
	recRemoteWork = "Working from home, when possible, can eliminate commute emissions entirely."
)

// generateRecommendations produces greener-travel suggestions for the
// final route set. The two baseline suggestions always appear;
// comparative ones are added only when the modes they compare are both
// present, and savings-based ones only when the saving is positive.
func generateRecommendations(routes []models.RouteOption) []string {
	recommendations := []string{recCarpooling, recRemoteWork}

	driving := findMode(routes, models.ModeDriving)
	transit := findMode(routes, models.ModeTransit)
	train := findMode(routes, models.ModeTrain)
	biking := findMode(routes, models.ModeBicycling)
	walking := findMode(routes, models.ModeWalking)
	airplane := findMode(routes, models.ModeAirplane)

	if driving != nil && (biking != nil || walking != nil) {
		bikingOrWalking := "walking"
		if biking != nil {
			bikingOrWalking = "biking"
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"Switching from driving to %s could eliminate your carbon emissions for this route.",
			bikingOrWalking,
		))
	}

	if driving != nil && (transit != nil || train != nil) {
		// Prefer the real transit route over the synthesized train route.
		alternative := transit
		alternativeName := "public transit"
		if alternative == nil {
			alternative = train
			alternativeName = "train"
		}

		saved := driving.CarbonEmission - alternative.CarbonEmission
		if saved > 0 {
			recommendations = append(recommendations, fmt.Sprintf(
				"Taking %s instead of driving could save approximately %.2f kg of CO2 emissions.",
				alternativeName, saved,
			))
		}
	}

	if airplane != nil && train != nil {
		saved := airplane.CarbonEmission - train.CarbonEmission
		if saved > 0 {
			recommendations = append(recommendations, fmt.Sprintf(
				"Taking a train instead of flying could save approximately %.2f kg of CO2 emissions.",
				saved,
			))
		}
	}

	return recommendations
}

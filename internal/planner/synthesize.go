package planner

import (
	"fmt"
	"math"

	"github.com/greenways/greenways/internal/api/models"
)

// Flight synthesis constants.
const (
	// flightThresholdMeters is the minimum driving distance before an
	// airplane option is offered.
	flightThresholdMeters = 100000

	// flightDistanceFactor estimates the direct flight distance as a
	// fraction of the driving distance.
	flightDistanceFactor = 0.8

	// flightSpeedKmh is the assumed average flight speed.
	flightSpeedKmh = 800

	// flightOverheadHours covers boarding, taxiing and the like.
	flightOverheadHours = 1.5
)

// synthesizeDerivedModes appends train, bus and airplane options derived
// from the queried routes. Train and bus reuse the transit route's
// geometry with their own emission factor; this is a documented
// approximation, not an independent transit query. The airplane option
// keeps the driving geometry but replaces distance and duration with
// flight estimates.
func synthesizeDerivedModes(routes []models.RouteOption) []models.RouteOption {
	if transit := findMode(routes, models.ModeTransit); transit != nil {
		distanceKm := float64(transit.Distance.Value) / 1000

		train := cloneOption(transit)
		train.Mode = models.ModeTrain
		train.CarbonEmission = EstimateEmission(distanceKm, models.ModeTrain)
		routes = append(routes, train)

		bus := cloneOption(transit)
		bus.Mode = models.ModeBus
		bus.CarbonEmission = EstimateEmission(distanceKm, models.ModeBus)
		routes = append(routes, bus)
	}

	if driving := findMode(routes, models.ModeDriving); driving != nil && driving.Distance.Value > flightThresholdMeters {
		flightKm := float64(driving.Distance.Value) * flightDistanceFactor / 1000

		airplane := cloneOption(driving)
		airplane.Mode = models.ModeAirplane
		airplane.Distance = models.TextValue{
			Text:  fmt.Sprintf("%d km", int64(math.Round(flightKm))),
			Value: int64(math.Round(flightKm * 1000)),
		}
		airplane.Duration = models.TextValue{
			Text:  formatFlightDuration(flightKm),
			Value: flightDurationSeconds(flightKm),
		}
		airplane.CarbonEmission = EstimateEmission(flightKm, models.ModeAirplane)
		routes = append(routes, airplane)
	}

	return routes
}

// findMode returns the first route with the given mode, or nil.
func findMode(routes []models.RouteOption, mode models.Mode) *models.RouteOption {
	for i := range routes {
		if routes[i].Mode == mode {
			return &routes[i]
		}
	}
	return nil
}

// cloneOption deep-copies a route option so derived modes never share
// mutable state with their source.
func cloneOption(opt *models.RouteOption) models.RouteOption {
	clone := *opt
	if opt.Steps != nil {
		clone.Steps = append([]byte(nil), opt.Steps...)
	}
	if opt.Bounds != nil {
		bounds := *opt.Bounds
		clone.Bounds = &bounds
	}
	return clone
}

// flightHours returns the estimated total travel time in hours for a
// flight covering the given distance.
func flightHours(distanceKm float64) float64 {
	return distanceKm/flightSpeedKmh + flightOverheadHours
}

// formatFlightDuration renders the flight time as "H h M min".
func formatFlightDuration(distanceKm float64) string {
	totalHours := flightHours(distanceKm)
	hours := math.Floor(totalHours)
	minutes := math.Round((totalHours - hours) * 60)
	return fmt.Sprintf("%d h %d min", int64(hours), int64(minutes))
}

// flightDurationSeconds returns the flight time in whole seconds.
func flightDurationSeconds(distanceKm float64) int64 {
	return int64(math.Round(flightHours(distanceKm) * 3600))
}

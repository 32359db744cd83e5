package models

import "encoding/json"

// TextValue pairs a provider-formatted display string with its numeric value,
// the shape the directions provider uses for distances (meters) and
// durations (seconds).
type TextValue struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

// RouteOptionsRequest is the request body for computing route options.
type RouteOptionsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// RouteOption represents one travel option for an origin/destination pair.
// It is computed fresh per planning request and never persisted as-is.
type RouteOption struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Distance    TextValue `json:"distance"`
	Duration    TextValue `json:"duration"`

	// Steps and Polyline are provider-supplied route geometry, passed
	// through unmodified.
	Steps    json.RawMessage `json:"steps,omitempty"`
	Polyline string          `json:"polyline,omitempty"`

	// Bounds is derived from the overview polyline for map rendering.
	Bounds *GeoBox `json:"bounds,omitempty"`

	Mode Mode `json:"mode"`

	// CarbonEmission is kg CO2 for the whole route, rounded to 2 decimals.
	CarbonEmission float64 `json:"carbonEmission"`

	// IsGreenest and IsFastest flag every route tied at the respective
	// extreme for this request.
	IsGreenest bool `json:"isGreenest"`
	IsFastest  bool `json:"isFastest"`
}

// RouteOptionsResponse is the response for route option computation.
type RouteOptionsResponse struct {
	Routes          []RouteOption `json:"routes"`
	Recommendations []string      `json:"recommendations"`
}

// SavedRouteInput is the route payload a user asks to save.
type SavedRouteInput struct {
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Distance       TextValue `json:"distance"`
	Duration       TextValue `json:"duration"`
	Mode           Mode      `json:"mode"`
	CarbonEmission float64   `json:"carbonEmission"`
}

// SaveRouteRequest is the request body for saving a chosen route.
type SaveRouteRequest struct {
	UserID    string           `json:"userId"`
	RouteData *SavedRouteInput `json:"routeData"`
}

// SavedRoute is a persisted route owned by a user.
type SavedRoute struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Distance       TextValue `json:"distance"`
	Duration       TextValue `json:"duration"`
	Mode           Mode      `json:"mode"`
	CarbonEmission float64   `json:"carbonEmission"`
	Date           Timestamp `json:"date"`
}

// SaveRouteResponse is the response after saving a route.
type SaveRouteResponse struct {
	Message string     `json:"message"`
	Route   SavedRoute `json:"route"`
}

// DeleteRouteResponse is the response after deleting a saved route.
type DeleteRouteResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	DeletedRoute SavedRoute `json:"deletedRoute"`
}

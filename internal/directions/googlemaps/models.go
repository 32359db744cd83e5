package googlemaps

import "encoding/json"

// Directions API response status codes we handle explicitly.
const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusNotFound       = "NOT_FOUND"
	statusOverQueryLimit = "OVER_QUERY_LIMIT"
	statusOverDailyLimit = "OVER_DAILY_LIMIT"
	statusRequestDenied  = "REQUEST_DENIED"
	statusInvalidRequest = "INVALID_REQUEST"
)

// gmResponse is the top-level Directions API response.
type gmResponse struct {
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Routes       []gmRoute `json:"routes"`
}

// gmRoute is a single route alternative.
type gmRoute struct {
	Legs             []gmLeg    `json:"legs"`
	OverviewPolyline gmPolyline `json:"overview_polyline"`
	Summary          string     `json:"summary"`
}

// gmLeg is one leg of a route. Requests without waypoints always
// produce exactly one leg.
type gmLeg struct {
	StartAddress string          `json:"start_address"`
	EndAddress   string          `json:"end_address"`
	Distance     gmTextValue     `json:"distance"`
	Duration     gmTextValue     `json:"duration"`
	Steps        json.RawMessage `json:"steps"`
}

// gmTextValue is the provider's text/value pair.
type gmTextValue struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

// gmPolyline wraps an encoded polyline.
type gmPolyline struct {
	Points string `json:"points"`
}

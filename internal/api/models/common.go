// Package models provides request and response models for the GreenWays API.
package models

import "time"

// Mode represents a transportation mode. The first four are queried from the
// directions provider directly; train, bus and airplane are synthesized from
// the base results.
type Mode string

const (
	ModeDriving    Mode = "driving"
	ModeWalking    Mode = "walking"
	ModeBicycling  Mode = "bicycling"
	ModeTransit    Mode = "transit"
	ModeTrain      Mode = "train"
	ModeBus        Mode = "bus"
	ModeAirplane   Mode = "airplane"
	ModeCarpooling Mode = "carpooling"
)

// BaseModes are the modes requested from the directions provider, in request
// order. Synthesized modes are appended after them.
var BaseModes = []Mode{ModeDriving, ModeTransit, ModeBicycling, ModeWalking}

// GeoBox represents a geographic bounding box.
type GeoBox struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// HealthStatus represents the health status of a service.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Timestamp is a helper type for time.Time with custom JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	// Remove quotes
	s := string(data[1 : len(data)-1])
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

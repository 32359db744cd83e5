package polyline

import (
	"math"
	"testing"
)

func TestDecode_ValidPolyline(t *testing.T) {
	tests := []struct {
		name     string
		encoded  string
		expected []Coordinate
	}{
		{
			name:    "single point",
			encoded: "_p~iF~ps|U",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name:    "two points",
			encoded: "_p~iF~ps|U_ulLnnqC",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
			},
		},
		{
			name:    "three points - Google example",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Decode(tt.encoded)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d coordinates, got %d", len(tt.expected), len(result))
			}

			for i, coord := range result {
				if !coordsEqual(coord, tt.expected[i], 0.001) {
					t.Errorf("coordinate %d: expected %+v, got %+v", i, tt.expected[i], coord)
				}
			}
		})
	}
}

func TestDecode_EmptyString(t *testing.T) {
	result := Decode("")
	if result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	coords := []Coordinate{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}

	encoded := Encode(coords)
	if encoded == "" {
		t.Fatal("expected non-empty encoded string")
	}

	decoded := Decode(encoded)
	if len(decoded) != len(coords) {
		t.Fatalf("round-trip: expected %d coordinates, got %d", len(coords), len(decoded))
	}
	for i, coord := range decoded {
		// Precision of 5 decimal places = 0.00001
		if !coordsEqual(coord, coords[i], 0.00001) {
			t.Errorf("round-trip coordinate %d: expected %+v, got %+v", i, coords[i], coord)
		}
	}
}

func TestEncode_EmptyCoordinates(t *testing.T) {
	if result := Encode(nil); result != "" {
		t.Errorf("expected empty string for nil coordinates, got %q", result)
	}
}

func TestBoundsOf(t *testing.T) {
	coords := []Coordinate{
		{Lat: 52.37, Lon: 4.89},
		{Lat: 52.09, Lon: 5.12},
		{Lat: 52.50, Lon: 4.50},
	}

	b := BoundsOf(coords)
	if b == nil {
		t.Fatal("expected bounds, got nil")
	}
	if b.MinLat != 52.09 || b.MaxLat != 52.50 {
		t.Errorf("unexpected lat bounds: %+v", b)
	}
	if b.MinLon != 4.50 || b.MaxLon != 5.12 {
		t.Errorf("unexpected lon bounds: %+v", b)
	}
}

func TestBoundsOf_Empty(t *testing.T) {
	if b := BoundsOf(nil); b != nil {
		t.Errorf("expected nil bounds for empty input, got %+v", b)
	}
}

func TestLength_ValidRoute(t *testing.T) {
	tests := []struct {
		name           string
		coords         []Coordinate
		expectedMeters float64
		tolerance      float64
	}{
		{
			name:           "empty",
			coords:         nil,
			expectedMeters: 0,
			tolerance:      0,
		},
		{
			name:           "single point",
			coords:         []Coordinate{{Lat: 52.0, Lon: 4.0}},
			expectedMeters: 0,
			tolerance:      0,
		},
		{
			name: "Amsterdam to Utrecht - roughly 35km",
			coords: []Coordinate{
				{Lat: 52.3676, Lon: 4.9041},
				{Lat: 52.0907, Lon: 5.1214},
			},
			expectedMeters: 35000,
			tolerance:      2000, // Allow 2km tolerance
		},
		{
			name: "1 degree latitude at equator - roughly 111km",
			coords: []Coordinate{
				{Lat: 0.0, Lon: 0.0},
				{Lat: 1.0, Lon: 0.0},
			},
			expectedMeters: 111000,
			tolerance:      1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Length(tt.coords)
			diff := math.Abs(result - tt.expectedMeters)
			if diff > tt.tolerance {
				t.Errorf("expected ~%.0fm (±%.0f), got %.0fm", tt.expectedMeters, tt.tolerance, result)
			}
		})
	}
}

// coordsEqual checks if two coordinates are equal within a tolerance.
func coordsEqual(a, b Coordinate, tolerance float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tolerance && math.Abs(a.Lon-b.Lon) <= tolerance
}

package maps

import "github.com/Cyclone1070/compassgenie/internal/geo"

// PlaceResult is a single entry from the place text-search endpoint, in
// provider ranking order.
type PlaceResult struct {
	Name             string   `json:"name"`
	Rating           float64  `json:"rating"`
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
}

// Geometry carries the coordinates of a place result.
type Geometry struct {
	Location geo.LatLng `json:"location"`
}

// RouteResult is a single candidate route from the directions endpoint.
type RouteResult struct {
	Legs             []Leg            `json:"legs"`
	OverviewPolyline OverviewPolyline `json:"overview_polyline"`
}

// Leg carries the display text for one leg of a route.
type Leg struct {
	Distance TextValue `json:"distance"`
	Duration TextValue `json:"duration"`
}

// TextValue is a human-readable value such as "12.4 km" or "25 mins".
type TextValue struct {
	Text string `json:"text"`
}

// OverviewPolyline is the compact encoded path of a route.
type OverviewPolyline struct {
	Points string `json:"points"`
}

// Wire envelopes. Every Maps web service response carries a status code
// distinguishing OK / ZERO_RESULTS / other-error (with message).

type searchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []PlaceResult `json:"results"`
}

type directionsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Routes       []RouteResult `json:"routes"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry Geometry `json:"geometry"`
	} `json:"results"`
}

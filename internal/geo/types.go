// Package geo provides the shared geographic types exchanged between the
// map tools, the agent loop and the HTTP layer.
package geo

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinates are within WGS84 bounds.
func (l LatLng) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Point is a named marker for map rendering.
type Point struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Color     string  `json:"color,omitempty"`
}

// Route is an ordered path for map rendering.
type Route struct {
	Path []LatLng `json:"path"`
}

// MapData is the structured map payload attached to a tool result.
// Points and Routes are always present in a successful payload, never null.
type MapData struct {
	Points []Point `json:"points"`
	Routes []Route `json:"routes"`
}

// NewMapData returns a MapData with initialized empty sequences.
func NewMapData() MapData {
	return MapData{Points: []Point{}, Routes: []Route{}}
}

// HasContent reports whether the payload carries anything worth rendering.
func (m MapData) HasContent() bool {
	return len(m.Points) > 0 || len(m.Routes) > 0
}

// ToolPayload is the JSON envelope returned by map-producing tools.
// On provider errors a tool may emit an empty mapping for map_data instead of
// the zero-points/zero-routes structure; both decode to a MapData with no
// content and callers treat them identically as "no map update".
type ToolPayload struct {
	ResponseText string  `json:"response_text"`
	MapData      MapData `json:"map_data"`
}

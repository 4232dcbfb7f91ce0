package adapter

import (
	provider "github.com/Cyclone1070/compassgenie/internal/provider/models"
	"github.com/Cyclone1070/compassgenie/internal/tools/aqi"
	"github.com/Cyclone1070/compassgenie/internal/tools/places"
	"github.com/Cyclone1070/compassgenie/internal/tools/websearch"
)

// This file is the closed tool catalog: one constructor per tool, each with
// a typed argument struct, so every declared tool has a matching executor at
// startup rather than a dynamic lookup by string name alone.

// NewMapsSearch creates the maps_api_search adapter.
func NewMapsSearch(tool *places.Tool) Tool {
	return NewBaseAdapter(
		"maps_api_search",
		"Searches Google Maps for nearby places or calculates a driving route. search_type: 'nearby' (finds places), 'route' (calculates directions).",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"search_term": {
					Type:        "string",
					Description: "The place query, or the route destination in route mode",
				},
				"latitude": {
					Type:        "number",
					Description: "The caller's current latitude",
				},
				"longitude": {
					Type:        "number",
					Description: "The caller's current longitude",
				},
				"search_type": {
					Type:        "string",
					Description: "'nearby' finds places around the caller; 'route' calculates driving directions",
					Enum:        []string{places.ModeNearby, places.ModeRoute},
				},
				"origin_override": {
					Type:        "string",
					Description: "Route origin address when the user starts somewhere other than their current location",
				},
				"waypoints": {
					Type:        "array",
					Description: "Intermediate stops ('via X') visited in order on the route",
					Items: &provider.PropertySchema{
						Type: "string",
					},
				},
			},
			Required: []string{"search_term", "latitude", "longitude", "search_type"},
		},
		tool.Search,
	)
}

// NewAirQuality creates the get_air_quality adapter.
func NewAirQuality(tool *aqi.Tool) Tool {
	return NewBaseAdapter(
		"get_air_quality",
		"Fetches the Air Quality Index (0-500 scale) and health recommendations. Uses 'location_name' or 'latitude'/'longitude' coordinates.",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"location_name": {
					Type:        "string",
					Description: "A city or place name to check; omit to use coordinates",
				},
				"latitude": {
					Type:        "number",
					Description: "Latitude of the location to check",
				},
				"longitude": {
					Type:        "number",
					Description: "Longitude of the location to check",
				},
			},
		},
		tool.Lookup,
	)
}

// NewWebSearch creates the web_search adapter.
func NewWebSearch(tool *websearch.Tool) Tool {
	return NewBaseAdapter(
		"web_search",
		"Finds weather or current facts near a location.",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"query": {
					Type:        "string",
					Description: "The question to answer",
				},
				"location": {
					Type:        "string",
					Description: "The place the question is about",
				},
			},
			Required: []string{"query", "location"},
		},
		tool.Search,
	)
}

// Package places implements the maps_api_search tool: nearby place search
// and driving-route planning, producing a text summary plus a structured map
// payload for rendering.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Cyclone1070/compassgenie/internal/geo"
	"github.com/Cyclone1070/compassgenie/internal/maps"
)

const (
	// ModeNearby finds places around the caller; ModeRoute plans a driving
	// route from the caller (or an overridden origin) to the search term.
	ModeNearby = "nearby"
	ModeRoute  = "route"

	currentLocationLabel = "Current Location"
	drivingMode          = "driving"

	maxNearbyResults = 5
)

// Advisor produces a short best-effort text from the model. A nil Advisor is
// valid; callers then always receive the fixed fallback tip.
type Advisor interface {
	Quick(ctx context.Context, prompt string) (string, error)
}

// Request carries the decoded maps_api_search arguments.
type Request struct {
	Term           string   `mapstructure:"search_term"`
	Latitude       float64  `mapstructure:"latitude"`
	Longitude      float64  `mapstructure:"longitude"`
	Mode           string   `mapstructure:"search_type"`
	OriginOverride string   `mapstructure:"origin_override"`
	Waypoints      []string `mapstructure:"waypoints"`
}

// Validate checks argument sanity before any provider call.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Term) == "" {
		return errors.New("search_term is required")
	}
	if !(geo.LatLng{Lat: r.Latitude, Lng: r.Longitude}).Valid() {
		return errors.New("latitude/longitude out of range")
	}
	switch r.Mode {
	case "", ModeNearby, ModeRoute:
		return nil
	default:
		return fmt.Errorf("unknown search_type %q", r.Mode)
	}
}

// Tool executes place and route searches against the Maps client.
type Tool struct {
	maps         *maps.Client
	advisor      Advisor
	logger       *slog.Logger
	radiusMeters int
}

// New creates the place/route search tool. radiusMeters bounds nearby
// searches around the caller.
func New(client *maps.Client, advisor Advisor, logger *slog.Logger, radiusMeters int) *Tool {
	if logger == nil {
		logger = slog.Default()
	}
	if radiusMeters <= 0 {
		radiusMeters = 10000
	}
	return &Tool{
		maps:         client,
		advisor:      advisor,
		logger:       logger.With("tool", "maps_api_search"),
		radiusMeters: radiusMeters,
	}
}

// Search runs the requested mode and returns the JSON tool payload. Provider
// failures are folded into the payload text, never returned as errors, so a
// bad upstream response degrades the conversation instead of aborting it.
//
// The nearby and route sections are independent conditionals; canonical
// usage selects exactly one via search_type.
func (t *Tool) Search(ctx context.Context, req Request) (string, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeNearby
	}

	result := geo.ToolPayload{
		ResponseText: "I was unable to find results.",
		MapData:      geo.NewMapData(),
	}

	if mode == ModeNearby {
		if payload, done, err := t.searchNearby(ctx, req, &result); done {
			return payload, err
		}
	}

	if mode == ModeRoute {
		if payload, done, err := t.searchRoute(ctx, req, &result); done {
			return payload, err
		}
	}

	return marshalPayload(result)
}

// searchNearby fills result with up to maxNearbyResults points. done is true
// only when a provider error short-circuits with an error payload.
func (t *Tool) searchNearby(ctx context.Context, req Request, result *geo.ToolPayload) (string, bool, error) {
	center := geo.LatLng{Lat: req.Latitude, Lng: req.Longitude}

	found, err := t.maps.TextSearch(ctx, req.Term, center, t.radiusMeters)
	if err != nil {
		t.logger.Warn("text search failed", "term", req.Term, "error", err)
		payload, merr := errorPayload(err.Error())
		return payload, true, merr
	}

	if len(found) == 0 {
		result.ResponseText = fmt.Sprintf("I couldn't find any places matching '%s'.", req.Term)
		return "", false, nil
	}

	if len(found) > maxNearbyResults {
		found = found[:maxNearbyResults]
	}

	lines := []string{fmt.Sprintf("Here are the results for **'%s'**:", req.Term)}
	for _, place := range found {
		result.MapData.Points = append(result.MapData.Points, geo.Point{
			Name:      place.Name,
			Latitude:  place.Geometry.Location.Lat,
			Longitude: place.Geometry.Location.Lng,
		})
		lines = append(lines, fmt.Sprintf("* **%s** (%s⭐)\n  _%s_",
			place.Name, ratingText(place.Rating), place.FormattedAddress))
	}

	result.ResponseText = strings.Join(lines, "\n")
	return "", false, nil
}

// searchRoute plans a driving route to req.Term and fills result with the
// decoded path and endpoint markers.
func (t *Tool) searchRoute(ctx context.Context, req Request, result *geo.ToolPayload) (string, bool, error) {
	origin := geo.LatLng{Lat: req.Latitude, Lng: req.Longitude}
	originName := currentLocationLabel
	warning := ""

	if req.OriginOverride != "" {
		if resolved, ok := t.maps.Geocode(ctx, req.OriginOverride); ok {
			origin = resolved
			originName = req.OriginOverride
		} else {
			// Keep the GPS origin; the warning is prepended to whatever the
			// route section produces.
			warning = fmt.Sprintf("Warning: Could not locate '%s'. Using GPS location. ", req.OriginOverride)
		}
	}

	originParam := fmt.Sprintf("%f,%f", origin.Lat, origin.Lng)
	routes, err := t.maps.Directions(ctx, originParam, req.Term, drivingMode, req.Waypoints)
	if err != nil {
		t.logger.Warn("directions failed", "destination", req.Term, "error", err)
		payload, merr := errorPayload(warning + err.Error())
		return payload, true, merr
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		result.ResponseText = warning + fmt.Sprintf("I couldn't find a route from %s to '%s'.", originName, req.Term)
		return "", false, nil
	}

	route := routes[0]
	leg := route.Legs[0]

	path, err := maps.DecodePolyline(route.OverviewPolyline.Points)
	if err != nil {
		t.logger.Error("route geometry decode failed", "error", err)
		payload, merr := errorPayload(warning + "I found a route but could not decode its geometry.")
		return payload, true, merr
	}

	tip := t.travelTip(ctx, originName, req.Term)

	result.ResponseText = warning + fmt.Sprintf(
		"### Route from %s to %s\n* 🚗 **Distance:** %s\n* ⏱️ **Time:** %s\n\n**Note:**\n%s",
		originName, req.Term, leg.Distance.Text, leg.Duration.Text, tip)

	result.MapData.Routes = append(result.MapData.Routes, geo.Route{Path: path})

	if originName != currentLocationLabel {
		result.MapData.Points = append(result.MapData.Points, geo.Point{
			Name:      originName,
			Latitude:  origin.Lat,
			Longitude: origin.Lng,
			Color:     "blue",
		})
	}

	if len(path) > 0 {
		destination := path[len(path)-1]
		result.MapData.Points = append(result.MapData.Points, geo.Point{
			Name:      req.Term,
			Latitude:  destination.Lat,
			Longitude: destination.Lng,
		})
	}

	return "", false, nil
}

// travelTip asks the model for one short traffic tip. Failures here must
// never fail the enclosing tool call.
func (t *Tool) travelTip(ctx context.Context, origin, destination string) string {
	const fallback = "* Drive safely!"

	if t.advisor == nil {
		return fallback
	}

	prompt := fmt.Sprintf("Give 1 short traffic tip for driving from %s to %s.", origin, destination)
	tip, err := t.advisor.Quick(ctx, prompt)
	if err != nil || strings.TrimSpace(tip) == "" {
		t.logger.Debug("travel tip unavailable", "error", err)
		return fallback
	}
	return tip
}

func ratingText(rating float64) string {
	if rating <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", rating)
}

func marshalPayload(payload geo.ToolPayload) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal tool payload: %w", err)
	}
	return string(b), nil
}

// errorPayload builds the provider-error envelope. map_data is an empty
// mapping here, which callers treat the same as zero points and routes.
func errorPayload(message string) (string, error) {
	b, err := json.Marshal(struct {
		ResponseText string   `json:"response_text"`
		MapData      struct{} `json:"map_data"`
	}{ResponseText: message})
	if err != nil {
		return "", fmt.Errorf("marshal tool payload: %w", err)
	}
	return string(b), nil
}

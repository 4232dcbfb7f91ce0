// Package aqi implements the get_air_quality tool: a health advisory for a
// named place or the caller's own coordinates.
package aqi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Cyclone1070/compassgenie/internal/airquality"
	"github.com/Cyclone1070/compassgenie/internal/geo"
)

// aqiWarningThreshold is the local index value above which the advisory
// leads with an unhealthy-air warning.
const aqiWarningThreshold = 150

// Geocoder resolves a free-text place name to coordinates, reporting any
// failure as not-found.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.LatLng, bool)
}

// Request carries the decoded get_air_quality arguments. Either a location
// name or an explicit coordinate pair must be supplied.
type Request struct {
	LocationName string   `mapstructure:"location_name"`
	Latitude     *float64 `mapstructure:"latitude"`
	Longitude    *float64 `mapstructure:"longitude"`
}

// Validate checks that the request names a resolvable location.
func (r Request) Validate() error {
	if r.LocationName == "" && (r.Latitude == nil || r.Longitude == nil) {
		return errors.New("either location_name or latitude and longitude are required")
	}
	return nil
}

// Tool formats air-quality advisories.
type Tool struct {
	air      *airquality.Client
	geocoder Geocoder
	logger   *slog.Logger
}

// New creates the air-quality tool.
func New(air *airquality.Client, geocoder Geocoder, logger *slog.Logger) *Tool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tool{
		air:      air,
		geocoder: geocoder,
		logger:   logger.With("tool", "get_air_quality"),
	}
}

// Lookup resolves the target location and returns a multi-section advisory.
// Provider and resolution failures become explanatory text, never errors.
func (t *Tool) Lookup(ctx context.Context, req Request) (string, error) {
	var loc geo.LatLng
	display := "your current location"

	if req.LocationName != "" {
		resolved, ok := t.geocoder.Geocode(ctx, req.LocationName)
		if !ok {
			return fmt.Sprintf("Could not find coordinates for %s.", req.LocationName), nil
		}
		loc = resolved
		display = req.LocationName
	} else {
		loc = geo.LatLng{Lat: *req.Latitude, Lng: *req.Longitude}
	}

	conditions, err := t.air.CurrentConditions(ctx, loc)
	if err != nil {
		t.logger.Warn("air quality lookup failed", "location", display, "error", err)
		return fmt.Sprintf("Error retrieving data: %v", err), nil
	}

	return formatAdvisory(display, conditions), nil
}

// formatAdvisory renders the structured multi-section advisory, applying the
// sensitive-group fallback chain: lung-disease text, else children's text,
// else a generic caution.
func formatAdvisory(display string, c *airquality.Conditions) string {
	pollutant := c.DominantPollutant
	if pollutant == "" {
		pollutant = "N/A"
	}

	general := c.Recommendations.GeneralPopulation
	if general == "" {
		general = "No specific advice."
	}

	sensitive := c.Recommendations.LungDiseasePopulation
	if sensitive == "" {
		sensitive = c.Recommendations.Children
	}
	if sensitive == "" {
		sensitive = "Take extra precautions if you have respiratory issues."
	}

	lines := []string{fmt.Sprintf("## Air Quality for %s", display)}

	if c.AQI > aqiWarningThreshold {
		lines = append(lines, "⚠️ **WARNING: Unhealthy air levels detected.**")
	}

	lines = append(lines,
		fmt.Sprintf("**AQI:** %d (%s)", c.AQI, c.Category),
		fmt.Sprintf("**Dominant Pollutant:** %s", pollutant),
		"\n### 💡 Health Recommendations",
		fmt.Sprintf("* **General Public:** %s", general),
		fmt.Sprintf("* **Sensitive Groups:** %s", sensitive),
	)

	return strings.Join(lines, "\n")
}

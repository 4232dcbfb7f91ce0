package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}

	if c.LLM.Model == "" {
		errs = append(errs, "llm.model must not be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, "llm.temperature must be between 0 and 2")
	}

	if c.Maps.RadiusMeters < 1 {
		errs = append(errs, "maps.radius_meters must be >= 1")
	}
	if c.Maps.SearchTimeoutSeconds < 1 {
		errs = append(errs, "maps.search_timeout_seconds must be >= 1")
	}
	if c.Maps.GeocodeTimeoutSeconds < 1 {
		errs = append(errs, "maps.geocode_timeout_seconds must be >= 1")
	}
	if c.Maps.RequestsPerSecond <= 0 {
		errs = append(errs, "maps.requests_per_second must be > 0")
	}
	if c.Maps.Burst < 1 {
		errs = append(errs, "maps.burst must be >= 1")
	}

	if c.AirQuality.TimeoutSeconds < 1 {
		errs = append(errs, "air_quality.timeout_seconds must be >= 1")
	}
	if c.AirQuality.RequestsPerSecond <= 0 {
		errs = append(errs, "air_quality.requests_per_second must be > 0")
	}
	if c.AirQuality.Burst < 1 {
		errs = append(errs, "air_quality.burst must be >= 1")
	}

	if c.Agent.MaxIterations < 1 {
		errs = append(errs, "agent.max_iterations must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Server     ServerConfig     `json:"server"`
	LLM        LLMConfig        `json:"llm"`
	Maps       MapsConfig       `json:"maps"`
	AirQuality AirQualityConfig `json:"air_quality"`
	Agent      AgentConfig      `json:"agent"`

	// Secrets come from the environment, never the dotfile.
	GeminiAPIKey string `json:"-"`
	MapsAPIKey   string `json:"-"`
}

type ServerConfig struct {
	Addr string `json:"addr"` // Default: ":8000"
}

type LLMConfig struct {
	Model       string  `json:"model"`       // Default: "gemini-2.5-flash"
	Temperature float32 `json:"temperature"` // Default: 1.0
}

type MapsConfig struct {
	RadiusMeters          int     `json:"radius_meters"`           // Default: 10000
	SearchTimeoutSeconds  int     `json:"search_timeout_seconds"`  // Default: 10
	GeocodeTimeoutSeconds int     `json:"geocode_timeout_seconds"` // Default: 5
	RequestsPerSecond     float64 `json:"requests_per_second"`     // Default: 10
	Burst                 int     `json:"burst"`                   // Default: 5
}

type AirQualityConfig struct {
	TimeoutSeconds    int     `json:"timeout_seconds"`     // Default: 10
	RequestsPerSecond float64 `json:"requests_per_second"` // Default: 10
	Burst             int     `json:"burst"`               // Default: 5
}

type AgentConfig struct {
	MaxIterations int `json:"max_iterations"` // Default: 8
}

// MockMapsEnabled reports whether the maps clients should serve canned
// responses because no Maps platform key is configured.
func (c *Config) MockMapsEnabled() bool {
	return c.MapsAPIKey == ""
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		LLM: LLMConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 1.0,
		},
		Maps: MapsConfig{
			RadiusMeters:          10000,
			SearchTimeoutSeconds:  10,
			GeocodeTimeoutSeconds: 5,
			RequestsPerSecond:     10,
			Burst:                 5,
		},
		AirQuality: AirQualityConfig{
			TimeoutSeconds:    10,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Agent: AgentConfig{
			MaxIterations: 8,
		},
	}
}

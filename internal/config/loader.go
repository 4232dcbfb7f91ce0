package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "compassgenie"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
)

// Environment variable names for secrets.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvMapsAPIKey   = "MAPS_API_KEY"
)

// FileSystem abstracts file and environment access for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	Getenv(key string) string
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (ConfigFileReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads configuration from ~/.config/compassgenie/config.json
// and merges it with defaults. Dotfile values override defaults.
// API keys are read from the environment after the merge.
// Returns default config if dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: This implementation unmarshals JSON keys directly over the default
// configuration. This allows explicit zero values (e.g., 0, "") in the
// config file to override defaults, while missing keys leave the defaults
// untouched.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		l.loadSecrets(cfg)
		return cfg, nil // Use defaults if can't get home dir
	}

	configPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)

	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			l.loadSecrets(cfg)
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, err // Return error for permission issues
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err // Return error for malformed JSON
	}

	l.loadSecrets(cfg)

	// Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) loadSecrets(cfg *Config) {
	cfg.GeminiAPIKey = l.fs.Getenv(EnvGeminiAPIKey)
	cfg.MapsAPIKey = l.fs.Getenv(EnvMapsAPIKey)
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}

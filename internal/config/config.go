// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over those defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

// Environment variables consulted before the koanf layers are applied.
const (
	EnvPrefix  = "MATCHBOARD_"
	EnvConfig  = EnvPrefix + "CONFIG"
	EnvEnvFile = EnvPrefix + "ENV_FILE"

	defaultEnvFile = ".env"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn warning error"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format" validate:"required,oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// DataPath points at the results file (.csv or .xlsx).
	DataPath string `koanf:"data_path" validate:"required"`

	// DefaultCountries is the initial country selection of the dashboard.
	// Names missing from the dataset are dropped at startup.
	DefaultCountries []string `koanf:"default_countries"`

	// TopMatches is the length of the highest-scoring list.
	TopMatches int `koanf:"top_matches" validate:"min=1"`

	// MaxPageSize caps GET /api/matches?limit.
	MaxPageSize int `koanf:"max_page_size" validate:"min=1"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		DataPath:         "all_matches.csv",
		DefaultCountries: []string{"India", "Brazil", "Spain", "Argentina"},
		TopMatches:       10,
		MaxPageSize:      500,
	}
}

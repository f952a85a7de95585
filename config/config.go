package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingCredential indicates no TMDB API key could be resolved from
// the config file or the environment.
var ErrMissingCredential = errors.New("missing TMDB API key")

// Load loads the configuration from file and environment.
//
// A config file is optional: the tool must be runnable with nothing but
// TMDB_API_KEY in the environment (or a local .env file). An explicitly
// passed configPath that cannot be read is still an error.
func Load(configPath string) (*Config, error) {
	// Populate the process environment from a local .env file if one
	// exists. Absence is not an error.
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".movie-analytics"))
		}

		// Check /etc
		v.AddConfigPath("/etc/movie-analytics/")
	}

	// Environment overrides, e.g. MOVIE_ANALYTICS_FETCH_MAX_PAGES.
	v.SetEnvPrefix("MOVIE_ANALYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The API key keeps its historical name.
	if err := v.BindEnv("tmdb.api_key", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			return nil, fmt.Errorf("error reading config %s: %w", configPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		// No config file found; environment alone has to carry us.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")

	// Fetch defaults
	v.SetDefault("fetch.language", "en")
	v.SetDefault("fetch.max_pages", 5)
	v.SetDefault("fetch.max_results", 0)
	v.SetDefault("fetch.retry_attempts", 4)

	// Report defaults
	v.SetDefault("report.output_dir", "charts")
	v.SetDefault("report.top_genres", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb.base_url is required")
	}

	if cfg.TMDB.APIKey == "" || cfg.TMDB.APIKey == "your-api-key-here" {
		return fmt.Errorf("tmdb.api_key (or TMDB_API_KEY): %w", ErrMissingCredential)
	}

	if cfg.Fetch.MaxPages < 1 {
		return fmt.Errorf("fetch.max_pages must be at least 1, got %d", cfg.Fetch.MaxPages)
	}

	if cfg.Fetch.MaxResults < 0 {
		return fmt.Errorf("fetch.max_results must not be negative, got %d", cfg.Fetch.MaxResults)
	}

	if cfg.Fetch.RetryAttempts < 1 {
		return fmt.Errorf("fetch.retry_attempts must be at least 1, got %d", cfg.Fetch.RetryAttempts)
	}

	if cfg.Report.TopGenres < 1 {
		return fmt.Errorf("report.top_genres must be at least 1, got %d", cfg.Report.TopGenres)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

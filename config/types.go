package config

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// FetchConfig controls pagination and retry behavior
type FetchConfig struct {
	Language      string `mapstructure:"language"`
	MaxPages      int    `mapstructure:"max_pages"`
	MaxResults    int    `mapstructure:"max_results"`
	RetryAttempts int    `mapstructure:"retry_attempts"`
}

// ReportConfig controls summary and chart output
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	TopGenres int    `mapstructure:"top_genres"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

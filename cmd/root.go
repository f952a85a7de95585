package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/PTR512/movie-analytics/analyzer"
	"github.com/PTR512/movie-analytics/chart"
	"github.com/PTR512/movie-analytics/config"
	"github.com/PTR512/movie-analytics/tmdb"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	tmdbClient    *tmdb.Client
	movieAnalyzer *analyzer.Analyzer

	appVersion   = "dev"
	appBuildTime = "unknown"

	// Command flags
	filterExpr string
	year       int
	language   string
	outputDir  string
	noCharts   bool
	limit      int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "movie-analytics",
	Short: "Fetch popular movies from TMDB and generate statistical reports",
	Long: `movie-analytics is a CLI tool that fetches popular movies for a given
release year and language from the TMDB API, computes summary statistics
and renders rating, genre and release-trend charts.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information for the version and update commands
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override output directory from command line if specified
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Report.OutputDir = outputDir
	}

	// Create TMDB client
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger,
		tmdb.WithMaxPages(cfg.Fetch.MaxPages),
		tmdb.WithMaxResults(cfg.Fetch.MaxResults),
		tmdb.WithRetryAttempts(uint(cfg.Fetch.RetryAttempts)),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	renderer := chart.NewRenderer(cfg.Report.OutputDir, logger)
	movieAnalyzer = analyzer.New(tmdbClient, renderer, logger, cfg.Report.TopGenres)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when stderr is a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDB",
	Long:  `Test the connection to the TMDB API and display the available genres.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)

	ctx := context.Background()
	genres, err := tmdbClient.GetGenres(ctx, cfg.Fetch.Language)
	if err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}

	fmt.Println("✓ Connection successful!")
	fmt.Printf("\nAvailable genres (%d):\n", len(genres))

	names := make([]string, 0, len(genres))
	for _, name := range genres {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  • %s\n", name)
	}

	return nil
}

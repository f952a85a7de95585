package analyzer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/PTR512/movie-analytics/tmdb"
)

// MovieFetcher fetches a movie collection for one query.
type MovieFetcher interface {
	DiscoverMovies(ctx context.Context, year int, language string) (*tmdb.DiscoverResult, error)
}

// ChartRenderer renders a report to image files and returns their paths.
type ChartRenderer interface {
	Render(ctx context.Context, report *Report) ([]string, error)
}

// Analyzer orchestrates fetching, summarizing and rendering
type Analyzer struct {
	fetcher   MovieFetcher
	renderer  ChartRenderer
	logger    zerolog.Logger
	topGenres int
}

// New creates a new Analyzer. The renderer may be nil, in which case
// reports are computed but no chart files are written.
func New(fetcher MovieFetcher, renderer ChartRenderer, logger zerolog.Logger, topGenres int) *Analyzer {
	return &Analyzer{
		fetcher:   fetcher,
		renderer:  renderer,
		logger:    logger,
		topGenres: topGenres,
	}
}

// ReportOptions controls a single report run
type ReportOptions struct {
	Year         int
	Language     string
	Filter       func(tmdb.Movie) bool
	RenderCharts bool
}

// GenerateReport runs the full pipeline: fetch, filter, summarize,
// render. Each run fetches its own collection; nothing is shared
// between runs.
func (a *Analyzer) GenerateReport(ctx context.Context, opts ReportOptions) (*Report, error) {
	result, err := a.fetcher.DiscoverMovies(ctx, opts.Year, opts.Language)
	if err != nil {
		return nil, err
	}

	movies := result.Movies
	if opts.Filter != nil {
		movies = applyFilter(movies, opts.Filter)
	}

	a.logger.Info().
		Int("year", opts.Year).
		Str("language", opts.Language).
		Int("fetched", len(result.Movies)).
		Int("matched", len(movies)).
		Int("skipped", result.Skipped).
		Msg("Fetched movie collection")

	report := Summarize(result.Query, movies, a.topGenres)
	report.SkippedRecords = result.Skipped

	if opts.RenderCharts && a.renderer != nil && report.Count > 0 {
		artifacts, err := a.renderer.Render(ctx, report)
		if err != nil {
			return nil, fmt.Errorf("failed to render charts: %w", err)
		}
		report.Artifacts = artifacts
	}

	return report, nil
}

// SearchMovies fetches the collection for a query and returns the
// movies matching the filter, preserving popularity order.
func (a *Analyzer) SearchMovies(ctx context.Context, year int, language string, filter func(tmdb.Movie) bool) ([]tmdb.Movie, error) {
	result, err := a.fetcher.DiscoverMovies(ctx, year, language)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		return result.Movies, nil
	}
	return applyFilter(result.Movies, filter), nil
}

func applyFilter(movies []tmdb.Movie, filter func(tmdb.Movie) bool) []tmdb.Movie {
	matched := make([]tmdb.Movie, 0, len(movies))
	for _, movie := range movies {
		if filter(movie) {
			matched = append(matched, movie)
		}
	}
	return matched
}

package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PTR512/movie-analytics/analyzer"
	"github.com/PTR512/movie-analytics/tmdb"
)

func fixtureReport(t *testing.T) *analyzer.Report {
	t.Helper()
	movies := []tmdb.Movie{
		{Title: "A", Rating: 3.4, Genres: []string{"Drama"}, ReleaseDate: time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{Title: "B", Rating: 7.1, Genres: []string{"Drama", "Thriller"}, ReleaseDate: time.Date(2023, time.March, 12, 0, 0, 0, 0, time.UTC)},
		{Title: "C", Rating: 8.2, Genres: []string{"Comedy"}, ReleaseDate: time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC)},
	}
	return analyzer.Summarize(tmdb.Query{Year: 2023, Language: "en"}, movies, 10)
}

func TestRenderWritesCharts(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, zerolog.Nop())

	paths, err := renderer.Render(context.Background(), fixtureReport(t))
	require.NoError(t, err)
	require.Len(t, paths, 3)

	expected := []string{
		filepath.Join(dir, "genres_2023_en.png"),
		filepath.Join(dir, "ratings_2023_en.png"),
		filepath.Join(dir, "trend_2023_en.png"),
	}
	assert.Equal(t, expected, paths)

	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0), path)
	}
}

func TestRenderOverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, zerolog.Nop())
	report := fixtureReport(t)

	first, err := renderer.Render(context.Background(), report)
	require.NoError(t, err)

	second, err := renderer.Render(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Same report, same directory: files are overwritten, never
	// duplicated.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(first))
}

func TestRenderEmptyReportProducesNothing(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, zerolog.Nop())

	report := analyzer.Summarize(tmdb.Query{Year: 2023, Language: "en"}, nil, 10)
	paths, err := renderer.Render(context.Background(), report)
	require.NoError(t, err)
	assert.Empty(t, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderFilenamesEncodeQuery(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, zerolog.Nop())

	movies := []tmdb.Movie{
		{Title: "X", Rating: 6.0, ReleaseDate: time.Date(1999, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Y", Rating: 7.5, ReleaseDate: time.Date(1999, time.September, 1, 0, 0, 0, 0, time.UTC)},
	}
	report := analyzer.Summarize(tmdb.Query{Year: 1999, Language: "de"}, movies, 10)

	paths, err := renderer.Render(context.Background(), report)
	require.NoError(t, err)

	// No genres in the input, so no genre chart.
	require.Len(t, paths, 2)
	assert.Contains(t, paths[0], "1999_de")
	assert.Contains(t, paths[1], "1999_de")
}

func TestRenderSkipsGenreChartWithoutGenres(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, zerolog.Nop())

	movies := []tmdb.Movie{
		{Title: "X", Rating: 6.0, ReleaseDate: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Y", Rating: 2.5, ReleaseDate: time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)},
	}
	report := analyzer.Summarize(tmdb.Query{Year: 2023, Language: "en"}, movies, 10)

	paths, err := renderer.Render(context.Background(), report)
	require.NoError(t, err)
	for _, path := range paths {
		assert.NotContains(t, path, "genres_")
	}
}

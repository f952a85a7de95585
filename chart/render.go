package chart

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/sync/errgroup"

	"github.com/PTR512/movie-analytics/analyzer"
)

const (
	chartWidth  = 1024
	chartHeight = 512

	// renderConcurrency bounds parallel chart rendering
	renderConcurrency = 3
)

// Renderer writes report charts as PNG files to an output directory
type Renderer struct {
	outputDir string
	logger    zerolog.Logger
}

// NewRenderer creates a new chart renderer
func NewRenderer(outputDir string, logger zerolog.Logger) *Renderer {
	return &Renderer{
		outputDir: outputDir,
		logger:    logger,
	}
}

// Render writes the charts for a report and returns their paths.
// Filenames encode the query parameters, so runs for different years
// never collide; a rerun of the same query overwrites its own files.
// An empty report produces no files.
func (r *Renderer) Render(ctx context.Context, report *analyzer.Report) ([]string, error) {
	if report.Count == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", r.outputDir, err)
	}

	suffix := fmt.Sprintf("%d_%s", report.Query.Year, report.Query.Language)

	type chartJob struct {
		path   string
		render func(w io.Writer) error
	}

	jobs := []chartJob{
		{
			path:   filepath.Join(r.outputDir, fmt.Sprintf("ratings_%s.png", suffix)),
			render: func(w io.Writer) error { return renderRatingHistogram(report, w) },
		},
		{
			path:   filepath.Join(r.outputDir, fmt.Sprintf("trend_%s.png", suffix)),
			render: func(w io.Writer) error { return renderReleaseTrend(report, w) },
		},
	}

	if len(report.TopGenres) > 0 {
		jobs = append(jobs, chartJob{
			path:   filepath.Join(r.outputDir, fmt.Sprintf("genres_%s.png", suffix)),
			render: func(w io.Writer) error { return renderTopGenres(report, w) },
		})
	}

	paths := make([]string, len(jobs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(renderConcurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := writeChart(job.path, job.render); err != nil {
				return fmt.Errorf("failed to render %s: %w", job.path, err)
			}
			paths[i] = job.path
			r.logger.Debug().Str("path", job.path).Msg("Wrote chart")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// writeChart renders into a freshly truncated file, overwriting any
// previous artifact at the same path.
func writeChart(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := render(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func renderRatingHistogram(report *analyzer.Report, w io.Writer) error {
	bars := make([]chart.Value, 0, len(report.Histogram))
	for _, bucket := range report.Histogram {
		bars = append(bars, chart.Value{
			Value: float64(bucket.Count),
			Label: bucket.Label(),
		})
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Rating distribution %d (%s)", report.Query.Year, report.Query.Language),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   60,
		XAxis:      chart.Style{FontSize: 9},
		Bars:       bars,
	}

	return graph.Render(chart.PNG, w)
}

func renderTopGenres(report *analyzer.Report, w io.Writer) error {
	bars := make([]chart.Value, 0, len(report.TopGenres))
	for _, genre := range report.TopGenres {
		bars = append(bars, chart.Value{
			Value: float64(genre.Count),
			Label: genre.Name,
		})
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Top genres %d (%s)", report.Query.Year, report.Query.Language),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   60,
		XAxis:      chart.Style{FontSize: 9},
		Bars:       bars,
	}

	return graph.Render(chart.PNG, w)
}

func renderReleaseTrend(report *analyzer.Report, w io.Writer) error {
	xs := make([]float64, 12)
	ys := make([]float64, 12)
	maxY := 0.0
	for i, count := range report.ReleasesByMonth {
		xs[i] = float64(i + 1)
		ys[i] = float64(count)
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Releases per month %d (%s)", report.Query.Year, report.Query.Language),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name:           "Month",
			Ticks:          monthTicks(),
			ValueFormatter: monthFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Releases",
			// Fixed range so a flat series still renders.
			Range: &chart.ContinuousRange{Min: 0, Max: maxY + 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Releases",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}

func monthTicks() []chart.Tick {
	ticks := make([]chart.Tick, 12)
	for i := 0; i < 12; i++ {
		ticks[i] = chart.Tick{
			Value: float64(i + 1),
			Label: time.Month(i + 1).String()[:3],
		}
	}
	return ticks
}

func monthFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	m := int(f + 0.5)
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()[:3]
}

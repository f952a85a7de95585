package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PTR512/movie-analytics/analyzer"
	"github.com/PTR512/movie-analytics/filter"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a statistical report for a release year",
	Long: `Fetch popular movies for the given release year, compute summary
statistics (rating distribution, top genres, release trend) and render
charts to the output directory.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntVarP(&year, "year", "y", time.Now().Year(), "release year to analyze")
	reportCmd.Flags().StringVarP(&language, "language", "l", "", "original language filter (default from config)")
	reportCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'Rating >= 7'")
	reportCmd.Flags().StringVarP(&outputDir, "output", "o", "", "chart output directory (default from config)")
	reportCmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip chart rendering")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Parse filter; an empty expression matches everything
	filterFunc, err := filter.ParseAndCreateFilter(filterExpr)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	lang := language
	if lang == "" {
		lang = cfg.Fetch.Language
	}

	logger.Info().Int("year", year).Str("language", lang).Msg("Generating report")

	ctx := context.Background()
	report, err := movieAnalyzer.GenerateReport(ctx, analyzer.ReportOptions{
		Year:         year,
		Language:     lang,
		Filter:       filterFunc,
		RenderCharts: !noCharts,
	})
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

const histogramBarWidth = 40

func printReport(report *analyzer.Report) {
	fmt.Printf("\nReport for %d (%s)\n", report.Query.Year, report.Query.Language)
	fmt.Println(strings.Repeat("━", 60))
	fmt.Printf("Movies analyzed:  %d\n", report.Count)
	if report.SkippedRecords > 0 {
		fmt.Printf("Skipped records:  %d\n", report.SkippedRecords)
	}

	if report.Count == 0 {
		fmt.Println("\nNo movies found for this query.")
		return
	}

	fmt.Printf("Mean rating:      %.2f\n", report.MeanRating)
	fmt.Printf("Median rating:    %.2f\n", report.MedianRating)
	fmt.Printf("Rating range:     %.1f to %.1f\n", report.MinRating, report.MaxRating)

	fmt.Printf("\nRating distribution:\n")
	maxCount := 0
	for _, bucket := range report.Histogram {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
	}
	for _, bucket := range report.Histogram {
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("█", bucket.Count*histogramBarWidth/maxCount)
		}
		fmt.Printf("  %5s %5d %s\n", bucket.Label(), bucket.Count, bar)
	}

	if len(report.TopGenres) > 0 {
		fmt.Printf("\nTop genres:\n")
		for _, genre := range report.TopGenres {
			fmt.Printf("  • %-16s %d\n", genre.Name, genre.Count)
		}
	}

	if len(report.Artifacts) > 0 {
		fmt.Printf("\nCharts written:\n")
		for _, path := range report.Artifacts {
			fmt.Printf("  • %s\n", path)
		}
	}
}

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PTR512/movie-analytics/filter"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies matching the filter criteria",
	Long:  `List the popular movies fetched for a release year that match the specified filter criteria.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&year, "year", "y", time.Now().Year(), "release year to analyze")
	listCmd.Flags().StringVarP(&language, "language", "l", "", "original language filter (default from config)")
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of movies to print (0 for all)")
}

func runList(cmd *cobra.Command, args []string) error {
	// Parse filter
	filterFunc, err := filter.ParseAndCreateFilter(filterExpr)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	lang := language
	if lang == "" {
		lang = cfg.Fetch.Language
	}

	logger.Info().Int("year", year).Str("language", lang).Str("filter", filterExpr).Msg("Searching movies")

	ctx := context.Background()
	movies, err := movieAnalyzer.SearchMovies(ctx, year, lang, filterFunc)
	if err != nil {
		return err
	}

	// Display results
	if len(movies) == 0 {
		fmt.Println("No movies found matching the filter criteria.")
		return nil
	}

	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}

	fmt.Printf("\nFound %d movies:\n", len(movies))
	fmt.Println(strings.Repeat("-", 80))

	for _, movie := range movies {
		fmt.Printf("• %s (%d)  rating %.1f  popularity %.1f\n", movie.Title, movie.Year, movie.Rating, movie.Popularity)
		if len(movie.Genres) > 0 {
			fmt.Printf("  Genres: %s\n", strings.Join(movie.Genres, ", "))
		}
	}

	return nil
}

package analyzer

import (
	"fmt"

	"github.com/PTR512/movie-analytics/tmdb"
)

// Report is the read-only aggregate computed from one movie collection.
// It carries the query it was built from so collections fetched with
// different parameters can never be mixed in one report.
type Report struct {
	Query          tmdb.Query
	Count          int
	SkippedRecords int
	MeanRating     float64
	MedianRating   float64
	MinRating      float64
	MaxRating      float64
	Histogram      []HistogramBucket
	TopGenres      []GenreCount
	// ReleasesByMonth counts releases per calendar month, January first.
	ReleasesByMonth [12]int
	// Artifacts holds the chart files written for this report.
	Artifacts []string
}

// HistogramBucket is one rating bucket [Low, High).
// The last bucket is inclusive of its upper bound.
type HistogramBucket struct {
	Low   float64
	High  float64
	Count int
}

// Label returns a display label like "7-8".
func (b HistogramBucket) Label() string {
	return fmt.Sprintf("%.0f-%.0f", b.Low, b.High)
}

// GenreCount is a genre label with its frequency in the collection.
type GenreCount struct {
	Name  string
	Count int
}

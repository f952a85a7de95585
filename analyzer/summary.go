package analyzer

import (
	"sort"

	"github.com/PTR512/movie-analytics/tmdb"
)

const histogramBuckets = 10

// Summarize computes the aggregate report for one movie collection.
// Deterministic given identical input ordering. An empty collection
// yields a report with zero counts and no chart artifacts, not an error.
func Summarize(query tmdb.Query, movies []tmdb.Movie, topGenres int) *Report {
	report := &Report{
		Query: query,
		Count: len(movies),
	}

	if len(movies) == 0 {
		return report
	}

	ratings := make([]float64, len(movies))
	for i, movie := range movies {
		ratings[i] = movie.Rating
	}
	sort.Float64s(ratings)

	report.MinRating = ratings[0]
	report.MaxRating = ratings[len(ratings)-1]
	report.MeanRating = mean(ratings)
	report.MedianRating = median(ratings)
	report.Histogram = histogram(ratings)
	report.TopGenres = topGenreCounts(movies, topGenres)

	for _, movie := range movies {
		report.ReleasesByMonth[movie.ReleaseDate.Month()-1]++
	}

	return report
}

func mean(sorted []float64) float64 {
	var total float64
	for _, v := range sorted {
		total += v
	}
	return total / float64(len(sorted))
}

// median expects its input sorted ascending.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// histogram buckets ratings into ten 1-point buckets over the 0..10
// scale. A rating of exactly 10 lands in the last bucket.
func histogram(ratings []float64) []HistogramBucket {
	buckets := make([]HistogramBucket, histogramBuckets)
	for i := range buckets {
		buckets[i].Low = float64(i)
		buckets[i].High = float64(i + 1)
	}

	for _, rating := range ratings {
		idx := int(rating)
		if idx >= histogramBuckets {
			idx = histogramBuckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].Count++
	}

	return buckets
}

// topGenreCounts returns the n most frequent genres. Ties are broken
// alphabetically so identical input always yields identical output.
func topGenreCounts(movies []tmdb.Movie, n int) []GenreCount {
	frequency := make(map[string]int)
	for _, movie := range movies {
		for _, genre := range movie.Genres {
			frequency[genre]++
		}
	}

	counts := make([]GenreCount, 0, len(frequency))
	for name, count := range frequency {
		counts = append(counts, GenreCount{Name: name, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}

	return counts
}

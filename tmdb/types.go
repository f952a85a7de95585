package tmdb

import (
	"encoding/json"
	"time"
)

// Movie is a normalized movie record for one discover query.
// Immutable once fetched.
type Movie struct {
	Title       string
	Year        int
	Rating      float64
	Genres      []string
	Popularity  float64
	ReleaseDate time.Time
}

// Query identifies the discover parameters a collection was fetched with.
type Query struct {
	Year     int
	Language string
}

// DiscoverResult holds the movies fetched for one query along with a
// count of malformed records that were skipped along the way.
type DiscoverResult struct {
	Query        Query
	Movies       []Movie
	Skipped      int
	TotalResults int
}

// Genre is one entry of the TMDB genre list.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// discoverResponse mirrors the /discover/movie payload. Results are kept
// raw so one malformed element cannot fail the whole page.
type discoverResponse struct {
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
	Results      []json.RawMessage `json:"results"`
}

// movieResult is a single element of a discover page. Required fields
// are pointers so a missing field is distinguishable from a zero value.
type movieResult struct {
	Title            *string  `json:"title"`
	ReleaseDate      *string  `json:"release_date"`
	VoteAverage      *float64 `json:"vote_average"`
	GenreIDs         []int64  `json:"genre_ids"`
	Popularity       float64  `json:"popularity"`
	VoteCount        int      `json:"vote_count"`
	OriginalLanguage string   `json:"original_language"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// errorResponse is the TMDB error envelope.
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DiscoverMovies fetches popular movies for a release year and original
// language, paginating until the upstream reports no further pages or a
// configured bound (max pages, max results) is reached. Malformed
// records are skipped and counted, never fatal.
func (c *Client) DiscoverMovies(ctx context.Context, year int, language string) (*DiscoverResult, error) {
	genres, err := c.GetGenres(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve genre names: %w", err)
	}

	result := &DiscoverResult{
		Query: Query{Year: year, Language: language},
	}

	page := 1
	for {
		params := url.Values{}
		params.Set("primary_release_year", strconv.Itoa(year))
		params.Set("with_original_language", language)
		params.Set("sort_by", "popularity.desc")
		params.Set("include_adult", "false")
		params.Set("page", strconv.Itoa(page))

		body, err := c.doRequest(ctx, "/discover/movie", params)
		if err != nil {
			return nil, fmt.Errorf("discover year=%d language=%s page=%d: %w", year, language, page, err)
		}

		var response discoverResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("failed to parse discover response: %w", err)
		}

		result.TotalResults = response.TotalResults

		for _, raw := range response.Results {
			movie, err := decodeMovie(raw, genres)
			if err != nil {
				result.Skipped++
				c.logger.Warn().
					Err(err).
					Int("page", page).
					Msg("Skipping malformed movie record")
				continue
			}

			result.Movies = append(result.Movies, movie)
			if c.maxResults > 0 && len(result.Movies) >= c.maxResults {
				c.logger.Debug().
					Int("total", len(result.Movies)).
					Msg("Reached configured result limit")
				return result, nil
			}
		}

		c.logger.Debug().
			Int("page", page).
			Int("count", len(response.Results)).
			Int("total", len(result.Movies)).
			Msg("Retrieved movies from TMDB")

		if response.TotalPages > 0 && page >= response.TotalPages {
			break
		}
		if page >= c.maxPages {
			c.logger.Debug().
				Int("max_pages", c.maxPages).
				Msg("Reached configured page limit")
			break
		}
		page++
	}

	return result, nil
}

// decodeMovie validates and normalizes one raw discover element
func decodeMovie(raw json.RawMessage, genres map[int64]string) (Movie, error) {
	var r movieResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return Movie{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	if r.Title == nil || *r.Title == "" {
		return Movie{}, fmt.Errorf("%w: missing title", ErrMalformedRecord)
	}
	if r.VoteAverage == nil {
		return Movie{}, fmt.Errorf("%w: missing vote_average for %q", ErrMalformedRecord, *r.Title)
	}
	if *r.VoteAverage < 0 || *r.VoteAverage > 10 {
		return Movie{}, fmt.Errorf("%w: vote_average %v out of range for %q", ErrMalformedRecord, *r.VoteAverage, *r.Title)
	}
	if r.ReleaseDate == nil || *r.ReleaseDate == "" {
		return Movie{}, fmt.Errorf("%w: missing release_date for %q", ErrMalformedRecord, *r.Title)
	}

	released, err := time.Parse("2006-01-02", *r.ReleaseDate)
	if err != nil {
		return Movie{}, fmt.Errorf("%w: invalid release_date %q for %q", ErrMalformedRecord, *r.ReleaseDate, *r.Title)
	}

	movie := Movie{
		Title:       *r.Title,
		Year:        released.Year(),
		Rating:      *r.VoteAverage,
		Popularity:  r.Popularity,
		ReleaseDate: released,
	}

	for _, id := range r.GenreIDs {
		if name, ok := genres[id]; ok {
			movie.Genres = append(movie.Genres, name)
		}
	}

	return movie, nil
}

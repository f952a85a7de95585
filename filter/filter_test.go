package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PTR512/movie-analytics/tmdb"
)

func testMovie() tmdb.Movie {
	return tmdb.Movie{
		Title:       "The Banshees of Inisherin",
		Year:        2022,
		Rating:      7.7,
		Genres:      []string{"Drama", "Comedy"},
		Popularity:  84.3,
		ReleaseDate: time.Date(2022, time.October, 21, 0, 0, 0, 0, time.UTC),
	}
}

func TestParseAndCreateFilter(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{
			name:       "rating threshold match",
			expression: `Rating >= 7.5`,
			want:       true,
		},
		{
			name:       "rating threshold no match",
			expression: `Rating >= 9`,
			want:       false,
		},
		{
			name:       "genre helper case-insensitive",
			expression: `hasGenre("drama")`,
			want:       true,
		},
		{
			name:       "genre helper no match",
			expression: `hasGenre("Horror")`,
			want:       false,
		},
		{
			name:       "title contains",
			expression: `contains(Title, "banshees")`,
			want:       true,
		},
		{
			name:       "combined expression",
			expression: `Rating > 7 and hasGenre("Comedy") and Year == 2022`,
			want:       true,
		},
		{
			name:       "popularity comparison",
			expression: `Popularity > 100`,
			want:       false,
		},
		{
			name:       "release date helper",
			expression: `releasedAfter(parseDate("2022-01-01"))`,
			want:       true,
		},
		{
			name:       "movie struct access",
			expression: `Movie.Rating > 7`,
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filterFunc, err := ParseAndCreateFilter(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filterFunc(testMovie()))
		})
	}
}

func TestParseAndCreateFilterEmptyMatchesAll(t *testing.T) {
	filterFunc, err := ParseAndCreateFilter("   ")
	require.NoError(t, err)
	assert.True(t, filterFunc(testMovie()))
	assert.True(t, filterFunc(tmdb.Movie{}))
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{
			name:       "syntax error",
			expression: `Rating >=`,
		},
		{
			name:       "non-boolean result",
			expression: `1 + 2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndCreateFilter(tt.expression)
			require.Error(t, err)

			var compErr *CompilationError
			require.ErrorAs(t, err, &compErr)
			assert.Equal(t, tt.expression, compErr.Expression)
		})
	}
}

func TestCompiledFilterExpression(t *testing.T) {
	compiled, err := NewExprCompiler().Compile(`Rating > 5`)
	require.NoError(t, err)
	assert.Equal(t, "Rating > 5", compiled.Expression())
}

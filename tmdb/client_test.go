package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PTR512/movie-analytics/config"
)

func genreHandler(w http.ResponseWriter, _ *http.Request) {
	json.NewEncoder(w).Encode(genreListResponse{
		Genres: []Genre{
			{ID: 28, Name: "Action"},
			{ID: 18, Name: "Drama"},
			{ID: 35, Name: "Comedy"},
		},
	})
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://api.themoviedb.org/3",
			apiKey:  "test-key",
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "base URL is required",
		},
		{
			name:    "missing API key",
			baseURL: "https://api.themoviedb.org/3",
			apiKey:  "",
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.apiKey, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
			assert.Equal(t, "https://api.themoviedb.org/3", client.baseURL)
			assert.Equal(t, tt.apiKey, client.apiKey)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost", "test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost", "test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with max pages", func(t *testing.T) {
		client, err := NewClient("http://localhost", "test-key", logger, WithMaxPages(3))
		require.NoError(t, err)
		assert.Equal(t, 3, client.maxPages)
	})

	t.Run("with retry attempts", func(t *testing.T) {
		client, err := NewClient("http://localhost", "test-key", logger, WithRetryAttempts(2))
		require.NoError(t, err)
		assert.Equal(t, uint(2), client.retryAttempts)
	})
}

func TestRetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(errorResponse{
				StatusCode:    25,
				StatusMessage: "Your request count is over the allowed limit",
			})
			return
		}
		genreHandler(w, r)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key", zerolog.Nop(), WithRetryDelay(10*time.Millisecond))
	require.NoError(t, err)

	genres, err := client.GetGenres(context.Background(), "en")
	require.NoError(t, err)
	assert.Len(t, genres, 3)
	assert.Equal(t, int32(3), calls.Load(), "expected two rate-limited attempts before success")
}

func TestRetryBudgetExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key", zerolog.Nop(),
		WithRetryAttempts(2), WithRetryDelay(10*time.Millisecond))
	require.NoError(t, err)

	_, err = client.GetGenres(context.Background(), "en")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsRateLimited())
	assert.GreaterOrEqual(t, calls.Load(), int32(2), "expected at least one retry")
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errorResponse{
			StatusCode:    7,
			StatusMessage: "Invalid API key: You must be granted a valid key.",
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key", zerolog.Nop(), WithRetryDelay(10*time.Millisecond))
	require.NoError(t, err)

	_, err = client.GetGenres(context.Background(), "en")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Invalid API key")
	assert.Equal(t, int32(1), calls.Load(), "client errors must not be retried")
}

func TestAPIKeyIsSentAsQueryParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.URL.Query().Get("api_key"))
		genreHandler(w, r)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret-key", zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, client.TestConnection(context.Background()))
}

func TestMissingCredentialMakesNoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		genreHandler(w, r)
	}))
	defer server.Close()

	t.Chdir(t.TempDir())
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("MOVIE_ANALYTICS_TMDB_BASE_URL", server.URL)

	_, err := config.Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissingCredential))
	assert.Equal(t, int32(0), calls.Load(), "no request may be issued without a credential")
}

func TestAPIError(t *testing.T) {
	t.Run("error message", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Endpoint:   "/discover/movie",
			Message:    "The resource you requested could not be found.",
		}
		assert.Equal(t, "tmdb API error: GET /discover/movie: status 404: The resource you requested could not be found.", err.Error())
	})

	t.Run("classification", func(t *testing.T) {
		tests := []struct {
			code        int
			notFound    bool
			unauth      bool
			rateLimited bool
			retryable   bool
		}{
			{401, false, true, false, false},
			{403, false, true, false, false},
			{404, true, false, false, false},
			{422, false, false, false, false},
			{429, false, false, true, true},
			{500, false, false, false, true},
			{503, false, false, false, true},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.notFound, err.IsNotFound(), "code %d", tt.code)
			assert.Equal(t, tt.unauth, err.IsUnauthorized(), "code %d", tt.code)
			assert.Equal(t, tt.rateLimited, err.IsRateLimited(), "code %d", tt.code)
			assert.Equal(t, tt.retryable, err.IsRetryable(), "code %d", tt.code)
		}
	})
}

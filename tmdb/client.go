package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxPages      = 5
	defaultRetryAttempts = 4
	defaultRetryDelay    = 500 * time.Millisecond
	maxRetryDelay        = 8 * time.Second
)

// Client represents a TMDB API client
type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	maxPages      int
	maxResults    int
	retryAttempts uint
	retryDelay    time.Duration
	logger        zerolog.Logger
}

// NewClient creates a new TMDB client. No network call is made here;
// the API key is only validated for presence.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		maxPages:      defaultMaxPages,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
		logger:        logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// TestConnection verifies the API key against the genre endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.GetGenres(ctx, "en")
	if err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	return nil
}

// GetGenres retrieves the movie genre list as an ID to name mapping
func (c *Client) GetGenres(ctx context.Context, language string) (map[int64]string, error) {
	params := url.Values{}
	if language != "" {
		params.Set("language", language)
	}

	body, err := c.doRequest(ctx, "/genre/movie/list", params)
	if err != nil {
		return nil, err
	}

	var response genreListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse genre list: %w", err)
	}

	genres := make(map[int64]string, len(response.Genres))
	for _, genre := range response.Genres {
		genres[genre.ID] = genre.Name
	}

	c.logger.Debug().Int("count", len(genres)).Msg("Retrieved genre list from TMDB")
	return genres, nil
}

// doRequest performs an authenticated GET, retrying transient failures
// (rate limiting, upstream 5xx) with bounded exponential backoff.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	var body []byte
	err := retry.Do(
		func() error {
			b, err := c.get(ctx, requestURL, endpoint)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.IsRetryable()
		}),
		retry.OnRetry(func(attempt uint, err error) {
			// The request URL carries the API key, so only the
			// endpoint is logged.
			c.logger.Warn().
				Err(err).
				Uint("attempt", attempt+1).
				Str("endpoint", endpoint).
				Msg("Retrying TMDB request")
		}),
	)
	if err != nil {
		return nil, err
	}

	return body, nil
}

// get performs a single HTTP GET without retry
func (c *Client) get(ctx context.Context, requestURL, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, endpoint, body)
	}

	return body, nil
}

// newAPIError builds an APIError, preferring the upstream error message
func newAPIError(statusCode int, endpoint string, body []byte) *APIError {
	message := http.StatusText(statusCode)

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.StatusMessage != "" {
		message = envelope.StatusMessage
	}

	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

package tmdb

import (
	"net/http"
	"time"
)

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithMaxPages bounds how many discover pages are fetched per query
func WithMaxPages(pages int) Option {
	return func(c *Client) {
		if pages > 0 {
			c.maxPages = pages
		}
	}
}

// WithMaxResults bounds how many movies are collected per query.
// Zero means no bound beyond the page limit.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxResults = n
		}
	}
}

// WithRetryAttempts sets the total attempt budget for transient failures
func WithRetryAttempts(attempts uint) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryAttempts = attempts
		}
	}
}

// WithRetryDelay sets the initial backoff delay between attempts
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

package yt_transcript

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/horiagug/yt-transcript-extract/internal/repository"
	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_formatters"
)

type Option func(*Client)

// WithCustomFetcher replaces the HTTP fetcher; the HTTP related options are
// ignored when it is set.
func WithCustomFetcher(fetcher repository.HTMLFetcherType) Option {
	return func(c *Client) {
		c.fetcher = fetcher
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithFormatter(formatter yt_transcript_formatters.Formatter) Option {
	return func(c *Client) {
		c.formatter = formatter
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithPreserveFormatting(preserve bool) Option {
	return func(c *Client) {
		c.preserveFormatting = preserve
	}
}

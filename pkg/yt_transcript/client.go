package yt_transcript

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/horiagug/yt-transcript-extract/internal/repository"
	"github.com/horiagug/yt-transcript-extract/internal/service"
	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_formatters"
	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_models"
)

type Client struct {
	transcriptService service.TranscriptService
	formatter         yt_transcript_formatters.Formatter

	fetcher    repository.HTMLFetcherType
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	logger     *slog.Logger

	preserveFormatting bool
}

func NewClient(options ...Option) *Client {
	client := &Client{
		formatter: yt_transcript_formatters.NewTextFormatter(),
		timeout:   repository.DefaultTimeout,
		baseURL:   repository.DefaultBaseURL,
		logger:    slog.Default(),
	}

	for _, opt := range options {
		opt(client)
	}

	if client.fetcher == nil {
		httpClient := client.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: client.timeout}
		}
		client.fetcher = repository.NewHTMLFetcher(
			repository.WithHTTPClient(httpClient),
			repository.WithBaseURL(client.baseURL),
			repository.WithLogger(client.logger),
		)
	}
	client.transcriptService = service.NewTranscriptService(client.fetcher, client.logger)

	return client
}

// FetchTranscript returns the transcript in the first of languages the video
// has captions for.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, languages []string) (*yt_transcript_models.Transcript, error) {
	return c.transcriptService.GetTranscript(ctx, videoID, languages, c.preserveFormatting)
}

func (c *Client) GetFormattedTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	transcript, err := c.FetchTranscript(ctx, videoID, languages)
	if err != nil {
		return "", err
	}

	text, err := c.formatter.Format(*transcript)
	if err != nil {
		return "", fmt.Errorf("failed to format transcript: %w", err)
	}
	return text, nil
}

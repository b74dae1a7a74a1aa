package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sync"
	"time"

	errs "github.com/horiagug/yt-transcript-extract/pkg/errors"
	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_models"
)

const (
	DefaultBaseURL = "https://www.youtube.com"
	DefaultTimeout = 30 * time.Second

	innertubeClientName    = "ANDROID"
	innertubeClientVersion = "20.10.38"
)

var (
	consentFormRegex  = regexp.MustCompile(`action="https://consent\.youtube\.com/s"`)
	consentValueRegex = regexp.MustCompile(`name="v" value="(.*?)"`)
)

type HTMLFetcherType interface {
	Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error)
	FetchVideo(ctx context.Context, videoID string) ([]byte, error)
	FetchInnertubeData(ctx context.Context, videoID string, apiKey string) (*yt_transcript_models.InnertubePlayerResponse, error)
}

type HTMLFetcher struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger

	mu      sync.Mutex
	consent *http.Cookie
}

type FetcherOption func(*HTMLFetcher)

func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *HTMLFetcher) {
		f.client = client
	}
}

// WithBaseURL points the fetcher at another host, mostly for tests.
func WithBaseURL(baseURL string) FetcherOption {
	return func(f *HTMLFetcher) {
		f.baseURL = baseURL
	}
}

func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *HTMLFetcher) {
		f.logger = logger
	}
}

func NewHTMLFetcher(options ...FetcherOption) *HTMLFetcher {
	f := &HTMLFetcher{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func (f *HTMLFetcher) Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if cookie == nil {
		cookie = f.consentCookie()
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return f.do(req)
}

func (f *HTMLFetcher) FetchVideo(ctx context.Context, videoID string) ([]byte, error) {
	videoURL := f.watchURL(videoID)

	body, err := f.Fetch(ctx, videoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video page: %w", err)
	}

	if consentRequired(body) {
		f.logger.Debug("consent required, setting cookie and retrying", "video_id", videoID)
		cookie, err := createConsentCookie(body)
		if err != nil {
			return nil, err
		}
		f.setConsentCookie(cookie)

		body, err = f.Fetch(ctx, videoURL, cookie)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video page after setting consent: %w", err)
		}
		if consentRequired(body) {
			return nil, errs.ErrConsentCookie
		}
	}

	return body, nil
}

func (f *HTMLFetcher) FetchInnertubeData(ctx context.Context, videoID string, apiKey string) (*yt_transcript_models.InnertubePlayerResponse, error) {
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]string{
				"clientName":    innertubeClientName,
				"clientVersion": innertubeClientVersion,
			},
		},
		"videoId": videoID,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode innertube request: %w", err)
	}

	url := fmt.Sprintf("%s/youtubei/v1/player?key=%s", f.baseURL, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie := f.consentCookie(); cookie != nil {
		req.AddCookie(cookie)
	}

	body, err := f.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch innertube data: %w", err)
	}

	var resp yt_transcript_models.InnertubePlayerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDataUnparsable, err)
	}
	return &resp, nil
}

func (f *HTMLFetcher) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept-Language", "en-US")

	f.logger.Debug("http request", "method", req.Method, "url", req.URL.String())
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: received status code %d", errs.ErrTooManyRequests, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return body, nil
}

func (f *HTMLFetcher) watchURL(videoID string) string {
	return fmt.Sprintf("%s/watch?v=%s", f.baseURL, videoID)
}

func (f *HTMLFetcher) consentCookie() *http.Cookie {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consent
}

func (f *HTMLFetcher) setConsentCookie(cookie *http.Cookie) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consent = cookie
}

func createConsentCookie(html []byte) (*http.Cookie, error) {
	match := consentValueRegex.FindSubmatch(html)
	if len(match) < 2 {
		return nil, fmt.Errorf("%w: consent value not found in HTML", errs.ErrConsentCookie)
	}

	return &http.Cookie{
		Name:   "CONSENT",
		Value:  "YES+" + string(match[1]),
		Domain: ".youtube.com",
	}, nil
}

func consentRequired(body []byte) bool {
	return consentFormRegex.Match(body)
}

package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/horiagug/yt-transcript-extract/pkg/errors"
)

const consentPage = `<form action="https://consent.youtube.com/s" method="POST"><input type="hidden" name="v" value="cb.20210328-17-p0.de+FX+123"></form>`

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *HTMLFetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTMLFetcher(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
}

func TestFetch(t *testing.T) {
	t.Run("Returns body and sends headers", func(t *testing.T) {
		var gotLang, gotCookie string
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			gotLang = r.Header.Get("Accept-Language")
			if c, err := r.Cookie("CONSENT"); err == nil {
				gotCookie = c.Value
			}
			_, _ = w.Write([]byte("ok"))
		})

		body, err := fetcher.Fetch(context.Background(), fetcher.baseURL+"/page", &http.Cookie{Name: "CONSENT", Value: "YES+x"})

		require.NoError(t, err)
		assert.Equal(t, "ok", string(body))
		assert.Equal(t, "en-US", gotLang)
		assert.Equal(t, "YES+x", gotCookie)
	})

	tests := []struct {
		name          string
		status        int
		body          string
		expectedError error
		expectedMsg   string
	}{
		{name: "Server error", status: http.StatusInternalServerError, body: "boom", expectedMsg: "received non-OK status code: 500"},
		{name: "Rate limited", status: http.StatusTooManyRequests, body: "slow down", expectedError: errs.ErrTooManyRequests},
		{name: "Empty body", status: http.StatusOK, body: "", expectedMsg: "empty response body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := fetcher.Fetch(context.Background(), fetcher.baseURL+"/page", nil)

			require.Error(t, err)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			}
			if tt.expectedMsg != "" {
				assert.Contains(t, err.Error(), tt.expectedMsg)
			}
			assert.Equal(t, 1, calls, "requests are not retried")
		})
	}

	t.Run("Cancelled context", func(t *testing.T) {
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, fetcher.baseURL+"/page", nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFetchVideo(t *testing.T) {
	t.Run("Plain watch page", func(t *testing.T) {
		var gotPath, gotID string
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotID = r.URL.Query().Get("v")
			_, _ = w.Write([]byte("<html>video</html>"))
		})

		body, err := fetcher.FetchVideo(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "<html>video</html>", string(body))
		assert.Equal(t, "/watch", gotPath)
		assert.Equal(t, "abc123", gotID)
	})

	t.Run("Consent cookie is set and reused", func(t *testing.T) {
		var innertubeCookie string
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("CONSENT")
			if r.URL.Path == "/youtubei/v1/player" {
				if err == nil {
					innertubeCookie = cookie.Value
				}
				_, _ = w.Write([]byte(`{}`))
				return
			}
			if err != nil {
				_, _ = w.Write([]byte(consentPage))
				return
			}
			_, _ = w.Write([]byte("<html>video</html>"))
		})

		body, err := fetcher.FetchVideo(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, "<html>video</html>", string(body))

		_, err = fetcher.FetchInnertubeData(context.Background(), "abc123", "key")
		require.NoError(t, err)
		assert.Equal(t, "YES+cb.20210328-17-p0.de+FX+123", innertubeCookie)
	})

	t.Run("Consent still required", func(t *testing.T) {
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(consentPage))
		})

		_, err := fetcher.FetchVideo(context.Background(), "abc123")

		assert.ErrorIs(t, err, errs.ErrConsentCookie)
	})

	t.Run("Consent value missing", func(t *testing.T) {
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<form action="https://consent.youtube.com/s"></form>`))
		})

		_, err := fetcher.FetchVideo(context.Background(), "abc123")

		assert.ErrorIs(t, err, errs.ErrConsentCookie)
	})
}

func TestFetchInnertubeData(t *testing.T) {
	t.Run("Posts the player request", func(t *testing.T) {
		var (
			gotMethod string
			gotKey    string
			gotBody   struct {
				Context struct {
					Client struct {
						ClientName    string `json:"clientName"`
						ClientVersion string `json:"clientVersion"`
					} `json:"client"`
				} `json:"context"`
				VideoID string `json:"videoId"`
			}
		)
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotKey = r.URL.Query().Get("key")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"http://example.com/de","name":{"simpleText":"Deutsch"},"languageCode":"de","kind":"asr"}]}}}`))
		})

		resp, err := fetcher.FetchInnertubeData(context.Background(), "abc123", "test_key")

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "test_key", gotKey)
		assert.Equal(t, "abc123", gotBody.VideoID)
		assert.Equal(t, "ANDROID", gotBody.Context.Client.ClientName)
		assert.Equal(t, "20.10.38", gotBody.Context.Client.ClientVersion)

		require.NotNil(t, resp.PlayabilityStatus)
		assert.Equal(t, "OK", resp.PlayabilityStatus.Status)
		tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
		require.Len(t, tracks, 1)
		assert.Equal(t, "de", tracks[0].LanguageCode)
		assert.True(t, tracks[0].IsGenerated())
	})

	t.Run("Unparsable response", func(t *testing.T) {
		fetcher := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		})

		_, err := fetcher.FetchInnertubeData(context.Background(), "abc123", "test_key")

		assert.ErrorIs(t, err, errs.ErrDataUnparsable)
	})
}

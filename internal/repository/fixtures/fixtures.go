package fixtures

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_models"
)

// MockHTMLFetcher implements HTMLFetcherType for testing
type MockHTMLFetcher struct {
	mock.Mock
}

func (m *MockHTMLFetcher) Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error) {
	args := m.Called(url, cookie)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockHTMLFetcher) FetchVideo(ctx context.Context, videoID string) ([]byte, error) {
	args := m.Called(videoID)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockHTMLFetcher) FetchInnertubeData(ctx context.Context, videoID string, apiKey string) (*yt_transcript_models.InnertubePlayerResponse, error) {
	args := m.Called(videoID, apiKey)
	resp, _ := args.Get(0).(*yt_transcript_models.InnertubePlayerResponse)
	return resp, args.Error(1)
}

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/horiagug/yt-transcript-extract/pkg/errors"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) GetFormattedTranscript(ctx context.Context, videoID string, languages []string) (string, error) {
	args := m.Called(videoID, languages)
	return args.String(0), args.Error(1)
}

type panickingFetcher struct{}

func (panickingFetcher) GetFormattedTranscript(context.Context, string, []string) (string, error) {
	panic("unexpected caption payload")
}

func TestExtract(t *testing.T) {
	languages := []string{"de", "en"}

	tests := []struct {
		name     string
		text     string
		err      error
		expected Result
	}{
		{
			name:     "Success",
			text:     "Hallo\nWelt",
			expected: Result{Success: true, Text: "Hallo\nWelt"},
		},
		{
			name:     "Empty transcript is still a success",
			text:     "",
			expected: Result{Success: true},
		},
		{
			name:     "Retrieval failure",
			err:      errs.NewRetrievalError("abc123", errs.ErrTranscriptsDisabled),
			expected: Result{Error: "could not retrieve a transcript for the video https://www.youtube.com/watch?v=abc123: subtitles are disabled for this video"},
		},
		{
			name:     "Error without a message",
			err:      errors.New(""),
			expected: Result{Error: "unknown error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &mockFetcher{}
			fetcher.On("GetFormattedTranscript", "abc123", languages).Return(tt.text, tt.err)

			result := Extract(context.Background(), fetcher, "abc123", languages)

			assert.Equal(t, tt.expected, result)
			fetcher.AssertExpectations(t)
		})
	}

	t.Run("Panic becomes a failure", func(t *testing.T) {
		result := Extract(context.Background(), panickingFetcher{}, "abc123", languages)
		assert.Equal(t, Failure("unexpected caption payload"), result)
	})
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected string
	}{
		{
			name:     "Success",
			result:   Success("Hallo <Welt> & mehr\nzweite Zeile"),
			expected: `{"success":true,"text":"Hallo <Welt> & mehr\nzweite Zeile"}` + "\n",
		},
		{
			name:     "Success with empty text keeps the field",
			result:   Success(""),
			expected: `{"success":true,"text":""}` + "\n",
		},
		{
			name:     "Missing video ID",
			result:   Failure(MissingVideoIDMessage),
			expected: `{"success":false,"error":"No video ID provided"}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tt.result))
			assert.Equal(t, tt.expected, buf.String())
			assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "output is a single line")

			var decoded Result
			require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
			assert.Equal(t, tt.result, decoded)
		})
	}
}

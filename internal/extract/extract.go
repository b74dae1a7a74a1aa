package extract

import (
	"context"
	"fmt"
	"log/slog"
)

// TranscriptFetcher retrieves a transcript and flattens it to text.
type TranscriptFetcher interface {
	GetFormattedTranscript(ctx context.Context, videoID string, languages []string) (string, error)
}

// Extract fetches and formats the transcript of videoID. Every failure,
// including a panic in the fetcher, is returned as a Failure result.
func Extract(ctx context.Context, fetcher TranscriptFetcher, videoID string, languages []string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("transcript extraction panicked", "video_id", videoID, "panic", r)
			result = Failure(fmt.Sprint(r))
		}
	}()

	text, err := fetcher.GetFormattedTranscript(ctx, videoID, languages)
	if err != nil {
		slog.Debug("transcript extraction failed", "video_id", videoID, "error", err)
		return Failure(err.Error())
	}
	return Success(text)
}

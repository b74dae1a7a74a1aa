package errors

import (
	"fmt"
	"strings"
)

type TranscriptError string

func (e TranscriptError) Error() string {
	return string(e)
}

const (
	ErrNoTranscript        = TranscriptError("no transcript found")
	ErrInvalidVideoID      = TranscriptError("invalid video ID, pass the video ID rather than the URL")
	ErrTooManyRequests     = TranscriptError("too many requests")
	ErrIPBlocked           = TranscriptError("youtube is blocking requests from your IP")
	ErrRequestBlocked      = TranscriptError("youtube is blocking requests, sign in to confirm you're not a bot")
	ErrVideoUnavailable    = TranscriptError("the video is no longer available")
	ErrVideoUnplayable     = TranscriptError("the video is unplayable")
	ErrAgeRestricted       = TranscriptError("the video is age-restricted")
	ErrTranscriptsDisabled = TranscriptError("subtitles are disabled for this video")
	ErrPoTokenRequired     = TranscriptError("the requested transcript requires a PO token")
	ErrDataUnparsable      = TranscriptError("the data required to fetch the transcript is not parsable")
	ErrConsentCookie       = TranscriptError("failed to automatically give consent to saving cookies")
)

const watchURL = "https://www.youtube.com/watch?v="

// RetrievalError ties a TranscriptError kind to the video it was raised for.
type RetrievalError struct {
	VideoID string
	Kind    TranscriptError
	Detail  string
}

func NewRetrievalError(videoID string, kind TranscriptError, detail ...string) *RetrievalError {
	return &RetrievalError{
		VideoID: videoID,
		Kind:    kind,
		Detail:  strings.Join(detail, "; "),
	}
}

func (e *RetrievalError) Error() string {
	msg := fmt.Sprintf("could not retrieve a transcript for the video %s%s: %s", watchURL, e.VideoID, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *RetrievalError) Unwrap() error {
	return e.Kind
}

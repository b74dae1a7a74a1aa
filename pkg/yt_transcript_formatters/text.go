package yt_transcript_formatters

import (
	"strings"

	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_models"
)

// TextFormatter flattens a transcript into its caption texts, one per line,
// without timing information.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (t *TextFormatter) Format(transcript yt_transcript_models.Transcript) (string, error) {
	var text strings.Builder

	for i, line := range transcript.Lines {
		if i > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(line.Text)
	}

	return text.String(), nil
}

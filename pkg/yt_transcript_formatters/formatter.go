package yt_transcript_formatters

import (
	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_models"
)

type Formatter interface {
	Format(transcript yt_transcript_models.Transcript) (string, error)
}

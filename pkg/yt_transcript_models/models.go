package yt_transcript_models

type TranscriptLine struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type Transcript struct {
	VideoID        string           `json:"video_id"`
	VideoTitle     string           `json:"video_title"`
	Language       string           `json:"language"`
	LanguageCode   string           `json:"language_code"`
	IsGenerated    bool             `json:"is_generated"`
	IsTranslatable bool             `json:"is_translatable"`
	Lines          []TranscriptLine `json:"lines"`
}

type LanguageName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs,omitempty"`
}

// Label returns the display name of the language, whichever shape YouTube sent.
func (n LanguageName) Label() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	if len(n.Runs) > 0 {
		return n.Runs[0].Text
	}
	return ""
}

type CaptionTrack struct {
	BaseUrl        string       `json:"baseUrl"`
	Name           LanguageName `json:"name"`
	VssId          string       `json:"vssId,omitempty"`
	LanguageCode   string       `json:"languageCode"`
	Kind           *string      `json:"kind,omitempty"`
	IsTranslatable bool         `json:"isTranslatable"`
}

// IsGenerated reports whether the track was produced by speech recognition.
func (c CaptionTrack) IsGenerated() bool {
	return c.Kind != nil && *c.Kind == "asr"
}

type TranscriptData struct {
	CaptionTracks []CaptionTrack `json:"captionTracks"`
}

type Captions struct {
	PlayerCaptionsTracklistRenderer *TranscriptData `json:"playerCaptionsTracklistRenderer"`
}

type PlayabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`

	// ErrorScreen carries the sub-reasons shown to the viewer.
	ErrorScreen struct {
		PlayerErrorMessageRenderer struct {
			Subreason struct {
				Runs []struct {
					Text string `json:"text"`
				} `json:"runs"`
			} `json:"subreason"`
		} `json:"playerErrorMessageRenderer"`
	} `json:"errorScreen"`
}

// Subreasons flattens the error screen runs.
func (p PlayabilityStatus) Subreasons() []string {
	runs := p.ErrorScreen.PlayerErrorMessageRenderer.Subreason.Runs
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		if r.Text != "" {
			out = append(out, r.Text)
		}
	}
	return out
}

// InnertubePlayerResponse is the subset of the youtubei player response we read.
type InnertubePlayerResponse struct {
	PlayabilityStatus *PlayabilityStatus `json:"playabilityStatus"`
	Captions          *Captions          `json:"captions"`
}

type VideoTranscriptData struct {
	Title       string
	Transcripts *TranscriptData
}

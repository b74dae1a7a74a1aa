package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/horiagug/yt-transcript-extract/internal/repository"
	errs "github.com/horiagug/yt-transcript-extract/pkg/errors"
	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_models"
)

var apiKeyRegex = regexp.MustCompile(`"INNERTUBE_API_KEY":\s*"([a-zA-Z0-9_-]+)"`)

const (
	playabilityOK            = "OK"
	playabilityLoginRequired = "LOGIN_REQUIRED"
	playabilityError         = "ERROR"

	reasonBotDetected   = "Sign in to confirm you’re not a bot"
	reasonAgeRestricted = "This video may be inappropriate for some users."
	reasonUnavailable   = "This video is unavailable"
)

type TranscriptService interface {
	GetTranscript(ctx context.Context, videoID string, languages []string, preserveFormatting bool) (*yt_transcript_models.Transcript, error)
}

type transcriptService struct {
	fetcher repository.HTMLFetcherType
	logger  *slog.Logger
}

func NewTranscriptService(fetcher repository.HTMLFetcherType, logger *slog.Logger) *transcriptService {
	if logger == nil {
		logger = slog.Default()
	}
	return &transcriptService{
		fetcher: fetcher,
		logger:  logger,
	}
}

// GetTranscript returns the transcript of the first language in languages that
// the video has captions for. Requests are issued one after another.
func (t *transcriptService) GetTranscript(ctx context.Context, videoID string, languages []string, preserveFormatting bool) (*yt_transcript_models.Transcript, error) {
	input := videoID
	videoID = t.sanitizeVideoId(videoID)

	transcriptData, err := t.extractTranscriptList(ctx, videoID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to extract list of transcripts: %w", err)
	}

	track, err := getTranscriptForLanguage(videoID, languages, *transcriptData.Transcripts)
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}
	t.logger.Debug("selected caption track",
		"video_id", videoID,
		"language_code", track.LanguageCode,
		"generated", track.IsGenerated(),
	)

	lines, err := t.getTranscriptFromTrack(ctx, videoID, track, preserveFormatting)
	if err != nil {
		return nil, fmt.Errorf("error getting transcript from track: %w", err)
	}

	return &yt_transcript_models.Transcript{
		VideoID:        videoID,
		VideoTitle:     transcriptData.Title,
		Language:       track.Name.Label(),
		LanguageCode:   track.LanguageCode,
		IsGenerated:    track.IsGenerated(),
		IsTranslatable: track.IsTranslatable,
		Lines:          lines,
	}, nil
}

func extractTitle(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var title string
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil {
				title = n.FirstChild.Data
				return
			}
		}
		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			f(c)
		}
	}

	f(doc)
	return title
}

func extractAPIKey(videoID string, body string) (string, error) {
	match := apiKeyRegex.FindStringSubmatch(body)
	if len(match) == 2 {
		return match[1], nil
	}
	if strings.Contains(body, `class="g-recaptcha"`) {
		return "", errs.NewRetrievalError(videoID, errs.ErrIPBlocked)
	}
	return "", errs.NewRetrievalError(videoID, errs.ErrDataUnparsable, "INNERTUBE_API_KEY not found")
}

func (t *transcriptService) extractTranscriptList(ctx context.Context, videoID string, input string) (*yt_transcript_models.VideoTranscriptData, error) {
	page, err := t.fetcher.FetchVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video page: %w", err)
	}

	body := string(page)
	title := extractTitle(body)

	apiKey, err := extractAPIKey(videoID, body)
	if err != nil {
		return nil, err
	}

	data, err := t.fetcher.FetchInnertubeData(ctx, videoID, apiKey)
	if err != nil {
		return nil, err
	}

	if err := assertPlayability(videoID, input, data.PlayabilityStatus); err != nil {
		return nil, err
	}

	if data.Captions == nil || data.Captions.PlayerCaptionsTracklistRenderer == nil ||
		data.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks == nil {
		return nil, errs.NewRetrievalError(videoID, errs.ErrTranscriptsDisabled)
	}

	transcripts := data.Captions.PlayerCaptionsTracklistRenderer
	for i := range transcripts.CaptionTracks {
		transcripts.CaptionTracks[i].BaseUrl = strings.ReplaceAll(transcripts.CaptionTracks[i].BaseUrl, "&fmt=srv3", "")
	}

	return &yt_transcript_models.VideoTranscriptData{Transcripts: transcripts, Title: title}, nil
}

func assertPlayability(videoID string, input string, status *yt_transcript_models.PlayabilityStatus) error {
	if status == nil || status.Status == playabilityOK || status.Status == "" {
		return nil
	}

	switch status.Status {
	case playabilityLoginRequired:
		if status.Reason == reasonBotDetected {
			return errs.NewRetrievalError(videoID, errs.ErrRequestBlocked)
		}
		if status.Reason == reasonAgeRestricted {
			return errs.NewRetrievalError(videoID, errs.ErrAgeRestricted)
		}
	case playabilityError:
		if status.Reason == reasonUnavailable {
			if looksLikeURL(input) {
				return errs.NewRetrievalError(videoID, errs.ErrInvalidVideoID)
			}
			return errs.NewRetrievalError(videoID, errs.ErrVideoUnavailable)
		}
	}

	detail := []string{}
	if status.Reason != "" {
		detail = append(detail, status.Reason)
	}
	detail = append(detail, status.Subreasons()...)
	return errs.NewRetrievalError(videoID, errs.ErrVideoUnplayable, detail...)
}

// getTranscriptForLanguage walks languages in order and, per language, prefers
// manually created tracks over generated ones.
func getTranscriptForLanguage(videoID string, languages []string, transcripts yt_transcript_models.TranscriptData) (yt_transcript_models.CaptionTrack, error) {
	manual, generated := splitTracks(transcripts.CaptionTracks)

	if len(languages) == 0 && len(transcripts.CaptionTracks) > 0 {
		if len(manual) > 0 {
			return manual[0], nil
		}
		return generated[0], nil
	}

	for _, lang := range languages {
		for _, group := range [][]yt_transcript_models.CaptionTrack{manual, generated} {
			for _, track := range group {
				if track.LanguageCode == lang {
					return track, nil
				}
			}
		}
	}

	return yt_transcript_models.CaptionTrack{}, errs.NewRetrievalError(videoID, errs.ErrNoTranscript,
		fmt.Sprintf("requested languages %v", languages),
		"available "+describeTracks(transcripts.CaptionTracks),
	)
}

func splitTracks(tracks []yt_transcript_models.CaptionTrack) (manual, generated []yt_transcript_models.CaptionTrack) {
	for _, track := range tracks {
		if track.IsGenerated() {
			generated = append(generated, track)
		} else {
			manual = append(manual, track)
		}
	}
	return manual, generated
}

func describeTracks(tracks []yt_transcript_models.CaptionTrack) string {
	if len(tracks) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(tracks))
	for _, track := range tracks {
		desc := fmt.Sprintf("%s (%s)", track.LanguageCode, track.Name.Label())
		if track.IsGenerated() {
			desc += " [generated]"
		}
		parts = append(parts, desc)
	}
	return strings.Join(parts, ", ")
}

func (t *transcriptService) getTranscriptFromTrack(ctx context.Context, videoID string, track yt_transcript_models.CaptionTrack, preserveFormatting bool) ([]yt_transcript_models.TranscriptLine, error) {
	if strings.Contains(track.BaseUrl, "&exp=xpe") {
		return nil, errs.NewRetrievalError(videoID, errs.ErrPoTokenRequired)
	}

	body, err := t.fetcher.Fetch(ctx, track.BaseUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	parser := repository.NewTranscriptParser(preserveFormatting)

	lines, err := parser.Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}
	return lines, nil
}

func looksLikeURL(videoID string) bool {
	return strings.HasPrefix(videoID, "http://") || strings.HasPrefix(videoID, "https://") || strings.HasPrefix(videoID, "www.")
}

func (t *transcriptService) sanitizeVideoId(videoID string) string {
	if !looksLikeURL(videoID) {
		return videoID
	}

	raw := videoID
	if strings.HasPrefix(raw, "www.") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.logger.Warn("could not parse video URL, using it as is", "input", videoID, "error", err)
		return videoID
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch {
	case host == "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id
		}
	case strings.HasSuffix(host, "youtube.com"):
		if id := u.Query().Get("v"); id != "" {
			return id
		}
	}

	t.logger.Warn("this doesn't look like a youtube video, we'll still try to process it", "input", videoID)
	return videoID
}

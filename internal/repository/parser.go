package repository

import (
	"encoding/xml"
	"html"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/horiagug/yt-transcript-extract/pkg/yt_transcript_models"
)

// transcriptParser turns timedtext XML into transcript lines
type transcriptParser struct {
	preserveFormatting bool
}

// Formatting tags kept when preserving formatting
var formattingTags = []string{
	"strong", "em", "b", "i", "mark", "small", "del", "ins", "sub", "sup",
}

var htmlRegex = regexp.MustCompile(`(?i)<[^>]*>`)

func NewTranscriptParser(preserveFormatting bool) *transcriptParser {
	return &transcriptParser{preserveFormatting: preserveFormatting}
}

func (p *transcriptParser) clean(text string) string {
	if !p.preserveFormatting {
		return htmlRegex.ReplaceAllString(text, "")
	}
	return htmlRegex.ReplaceAllStringFunc(text, func(tag string) string {
		if slices.Contains(formattingTags, tagName(tag)) {
			return tag
		}
		return ""
	})
}

func tagName(tag string) string {
	name := strings.ToLower(strings.Trim(tag, "</>"))
	if i := strings.IndexAny(name, " \t/"); i >= 0 {
		name = name[:i]
	}
	return name
}

// Parse extracts transcript text, start time, and duration from XML
func (p *transcriptParser) Parse(plainData string) ([]yt_transcript_models.TranscriptLine, error) {
	type XMLTranscript struct {
		XMLName xml.Name `xml:"transcript"`
		Texts   []struct {
			Text     string `xml:",chardata"`
			Start    string `xml:"start,attr"`
			Duration string `xml:"dur,attr"`
		} `xml:"text"`
	}

	var parsedXML XMLTranscript
	if err := xml.Unmarshal([]byte(plainData), &parsedXML); err != nil {
		return nil, err
	}

	results := make([]yt_transcript_models.TranscriptLine, 0, len(parsedXML.Texts))
	for _, entry := range parsedXML.Texts {
		if entry.Text == "" {
			continue
		}

		// captions arrive entity-encoded twice, so unescape before stripping tags
		text := p.clean(html.UnescapeString(entry.Text))

		start, err := strconv.ParseFloat(entry.Start, 64)
		if err != nil {
			start = 0.0
		}

		duration, err := strconv.ParseFloat(entry.Duration, 64)
		if err != nil {
			duration = 0.0
		}

		results = append(results, yt_transcript_models.TranscriptLine{
			Text:     text,
			Start:    start,
			Duration: duration,
		})
	}
	return results, nil
}

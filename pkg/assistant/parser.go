package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/borgmon/jumpin/pkg/calendar"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultParseModel = "gemini-3-flash-preview"

const cacheTTL = 5 * time.Minute

// Parser extracts meeting details from free text
type Parser struct {
	gen    Generator
	model  string
	cache  *cache.Cache
	logger *zap.Logger
}

// NewParser creates a Parser
func NewParser(gen Generator, model string, log *zap.Logger) *Parser {
	if model == "" {
		model = DefaultParseModel
	}
	return &Parser{
		gen:    gen,
		model:  model,
		cache:  cache.New(cacheTTL, 2*cacheTTL),
		logger: log,
	}
}

// Parse asks the model for a partial draft. Identical text on the same day
// is answered from cache.
func (p *Parser) Parse(ctx context.Context, text string, today time.Time) (models.ParsedDraft, error) {
	key := today.Format(models.DateLayout) + "\x00" + strings.TrimSpace(text)
	if cached, ok := p.cache.Get(key); ok {
		p.logger.Debug("parse cache hit", zap.String("text", text))
		return cached.(models.ParsedDraft), nil
	}

	resp, err := p.gen.GenerateContent(ctx, p.model, genai.Text(BuildPrompt(text, today)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return models.ParsedDraft{}, errors.Wrap(err, "parse request")
	}

	parsed, err := DecodeParsedDraft(resp.Text())
	if err != nil {
		return models.ParsedDraft{}, err
	}

	p.cache.SetDefault(key, parsed)
	return parsed, nil
}

// BuildPrompt is the instruction sent with the user's text
func BuildPrompt(text string, today time.Time) string {
	return fmt.Sprintf(`Extract meeting details from this text: "%s".
Current year is %d. Today's date is %s.
Return a JSON object with fields: title, date (YYYY-MM-DD), startTime (HH:mm), platform (Google Meet, Zoom, Microsoft Teams, Discord, Slack, Webex or Other), link.
Omit any field you cannot determine.`,
		text, today.Year(), today.Format(models.DateLayout))
}

type rawDraft struct {
	Title     *string `json:"title"`
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	Platform  *string `json:"platform"`
	Link      *string `json:"link"`
}

// DecodeParsedDraft turns the model's JSON into a ParsedDraft. Anything but
// a JSON object is ErrMalformedResponse; missing, null, blank or ill-formed
// fields are left empty.
func DecodeParsedDraft(raw string) (models.ParsedDraft, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return models.ParsedDraft{}, errors.Wrap(ErrMalformedResponse, "expected a JSON object")
	}

	var fields rawDraft
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return models.ParsedDraft{}, errors.Wrapf(ErrMalformedResponse, "decode: %v", err)
	}

	parsed := models.ParsedDraft{
		Title:     clean(fields.Title),
		Date:      cleanLayout(fields.Date, models.DateLayout),
		StartTime: cleanTime(fields.StartTime),
		Link:      clean(fields.Link),
	}

	if name := clean(fields.Platform); name != "" {
		if p, ok := models.ParsePlatform(name); ok {
			parsed.Platform = string(p)
		}
	}
	if parsed.Platform == "" && parsed.Link != "" {
		if p, ok := calendar.DetectPlatform(parsed.Link); ok {
			parsed.Platform = string(p)
		}
	}
	return parsed, nil
}

func clean(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func cleanLayout(v *string, layout string) string {
	s := clean(v)
	if s == "" {
		return ""
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return ""
	}
	return t.Format(layout)
}

// cleanTime accepts HH:mm and HH:mm:ss, always returning HH:mm
func cleanTime(v *string) string {
	s := clean(v)
	for _, layout := range []string{models.TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.TimeLayout)
		}
	}
	return ""
}

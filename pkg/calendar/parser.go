package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/borgmon/jumpin/pkg/models"
	"github.com/emersion/go-ical"
)

var ErrNoEvent = errors.New("invite contains no event")

// DecodeInvite reads the first event of an .ics invite into a partial draft,
// with date and time expressed in loc
func DecodeInvite(r io.Reader, loc *time.Location) (models.ParsedDraft, error) {
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return models.ParsedDraft{}, fmt.Errorf("decode invite: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return models.ParsedDraft{}, ErrNoEvent
	}
	return parseEvent(events[0].Component, loc), nil
}

func parseEvent(comp *ical.Component, loc *time.Location) models.ParsedDraft {
	normalizeComponentTimezones(comp)

	var draft models.ParsedDraft

	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		draft.Title = strings.TrimSpace(summaryProp.Value)
	}

	if startProp := comp.Props.Get(ical.PropDateTimeStart); startProp != nil {
		if t, err := parseDateTimeProperty(startProp, timezoneOf(comp, loc)); err == nil {
			t = t.In(loc)
			draft.Date = t.Format(models.DateLayout)
			draft.StartTime = t.Format(models.TimeLayout)
		}
	}

	// URL first, then the free-text fields where invites usually hide the link
	if urlProp := comp.Props.Get(ical.PropURL); urlProp != nil {
		draft.Link = ExtractMeetingLink(urlProp.Value)
	}
	for _, name := range []string{ical.PropLocation, ical.PropDescription} {
		if draft.Link != "" {
			break
		}
		if prop := comp.Props.Get(name); prop != nil {
			draft.Link = ExtractMeetingLink(prop.Value)
		}
	}

	if p, ok := DetectPlatform(draft.Link); ok {
		draft.Platform = string(p)
	}
	return draft
}

func parseDateTimeProperty(prop *ical.Prop, fallback *time.Location) (time.Time, error) {
	if t, err := prop.DateTime(fallback); err == nil {
		return t, nil
	}

	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, prop.Value, fallback); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", prop.Value)
}

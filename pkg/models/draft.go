package models

import "strings"

// Draft is the in-progress meeting being composed. Every field is a raw
// string until the draft is committed.
type Draft struct {
	Title       string `json:"title"`
	Date        string `json:"date"`      // YYYY-MM-DD
	StartTime   string `json:"startTime"` // HH:mm, 24-hour
	Platform    string `json:"platform"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// DateLayout and TimeLayout are the fixed formats of Draft.Date and Draft.StartTime
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NewDraft returns an empty draft with the default platform selected
func NewDraft() Draft {
	return Draft{Platform: string(PlatformGoogleMeet)}
}

// HasSchedule reports whether both date and start time are filled in
func (d Draft) HasSchedule() bool {
	return strings.TrimSpace(d.Date) != "" && strings.TrimSpace(d.StartTime) != ""
}

// ParsedDraft is the best-effort result of the language parsing service.
// An empty field means the parser did not know the value.
type ParsedDraft struct {
	Title     string `json:"title,omitempty"`
	Date      string `json:"date,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Link      string `json:"link,omitempty"`
}

// IsEmpty reports whether the parser returned nothing usable
func (p ParsedDraft) IsEmpty() bool {
	return p == ParsedDraft{}
}

// MergeInto copies the non-empty fields of p over d, leaving the rest intact
func (p ParsedDraft) MergeInto(d Draft) Draft {
	if p.Title != "" {
		d.Title = p.Title
	}
	if p.Date != "" {
		d.Date = p.Date
	}
	if p.StartTime != "" {
		d.StartTime = p.StartTime
	}
	if p.Platform != "" {
		d.Platform = p.Platform
	}
	if p.Link != "" {
		d.Link = p.Link
	}
	return d
}

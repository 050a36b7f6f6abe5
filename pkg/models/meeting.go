package models

import (
	"strings"
	"time"
)

// Platform is the video/voice service a meeting runs on
type Platform string

const (
	PlatformGoogleMeet Platform = "Google Meet"
	PlatformZoom       Platform = "Zoom"
	PlatformTeams      Platform = "Microsoft Teams"
	PlatformDiscord    Platform = "Discord"
	PlatformSlack      Platform = "Slack"
	PlatformWebex      Platform = "Webex"
	PlatformOther      Platform = "Other"
)

// Platforms lists every platform in display order
var Platforms = []Platform{
	PlatformGoogleMeet,
	PlatformZoom,
	PlatformTeams,
	PlatformDiscord,
	PlatformSlack,
	PlatformWebex,
	PlatformOther,
}

var platformAliases = map[string]Platform{
	"google meet":     PlatformGoogleMeet,
	"googlemeet":      PlatformGoogleMeet,
	"google":          PlatformGoogleMeet,
	"meet":            PlatformGoogleMeet,
	"gmeet":           PlatformGoogleMeet,
	"zoom":            PlatformZoom,
	"microsoft teams": PlatformTeams,
	"ms teams":        PlatformTeams,
	"teams":           PlatformTeams,
	"discord":         PlatformDiscord,
	"slack":           PlatformSlack,
	"slack huddle":    PlatformSlack,
	"webex":           PlatformWebex,
	"cisco webex":     PlatformWebex,
	"other":           PlatformOther,
}

var defaultLinks = map[Platform]string{
	PlatformGoogleMeet: "https://meet.google.com/new",
	PlatformZoom:       "https://zoom.us/start/videomeeting",
	PlatformTeams:      "https://teams.microsoft.com/l/meeting/new",
	PlatformDiscord:    "https://discord.com/app",
	PlatformSlack:      "https://app.slack.com/client",
	PlatformWebex:      "https://web.webex.com/meet",
}

// ParsePlatform maps a display name or common alias to a Platform.
// The second return value is false for unknown names.
func ParsePlatform(name string) (Platform, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	p, ok := platformAliases[key]
	return p, ok
}

// PlatformOrOther is ParsePlatform with unknown names mapped to PlatformOther
func PlatformOrOther(name string) Platform {
	if p, ok := ParsePlatform(name); ok {
		return p
	}
	return PlatformOther
}

// Valid reports whether p is one of the known platforms
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// DefaultLink returns the link substituted when a meeting is committed without one
func (p Platform) DefaultLink() string {
	if link, ok := defaultLinks[p]; ok {
		return link
	}
	return defaultLinks[PlatformGoogleMeet]
}

// Source tags where a meeting was discovered. Informational only.
type Source string

const (
	SourceGmail    Source = "Gmail"
	SourceCalendar Source = "Calendar"
	SourceWhatsApp Source = "WhatsApp"
	SourceDiscord  Source = "Discord"
)

// NormalizeLink adds an https scheme to a bare host such as
// "meet.google.com/abc-defg-hij". Anything else is returned trimmed.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.Contains(link, "://") || strings.ContainsAny(link, " \t") {
		return link
	}
	host, _, _ := strings.Cut(link, "/")
	if !strings.Contains(host, ".") {
		return link
	}
	return "https://" + link
}

// Meeting represents a scheduled meeting
type Meeting struct {
	ID           string    `validate:"required"`
	Title        string    `validate:"required"`
	StartTime    time.Time `validate:"required"`          // UTC
	EndTime      time.Time `validate:"gtfield=StartTime"` // UTC
	Platform     Platform  `validate:"platform"`
	Link         string
	Participants []string
	Source       Source
	Description  string
	IsReminded   bool // set once, when the reminder fires
}

// Duration returns EndTime - StartTime
func (m Meeting) Duration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}

// Clone returns a copy that shares no slices with m
func (m Meeting) Clone() Meeting {
	if m.Participants != nil {
		m.Participants = append([]string(nil), m.Participants...)
	}
	return m
}

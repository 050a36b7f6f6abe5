package calendar

import (
	"regexp"
	"strings"

	"github.com/borgmon/jumpin/pkg/models"
)

var urlRegex = regexp.MustCompile(`https?://[^\s<>"{}|\\^[\]` + "`" + `]+`)

// providers maps a host fragment to the platform it belongs to, checked in order
var providers = []struct {
	fragment string
	platform models.Platform
}{
	{"meet.google", models.PlatformGoogleMeet},
	{"zoom.us", models.PlatformZoom},
	{"zoom", models.PlatformZoom},
	{"teams.microsoft", models.PlatformTeams},
	{"teams.live", models.PlatformTeams},
	{"discord.gg", models.PlatformDiscord},
	{"discord.com", models.PlatformDiscord},
	{"slack.com", models.PlatformSlack},
	{"webex", models.PlatformWebex},
}

// ExtractMeetingLink returns the first URL in text, preferring known meeting providers
func ExtractMeetingLink(text string) string {
	matches := urlRegex.FindAllString(text, -1)

	for _, match := range matches {
		if _, ok := DetectPlatform(match); ok {
			return strings.TrimRight(match, ".,;)")
		}
	}
	if len(matches) > 0 {
		return strings.TrimRight(matches[0], ".,;)")
	}
	return ""
}

// DetectPlatform guesses the platform from a meeting link
func DetectPlatform(link string) (models.Platform, bool) {
	lower := strings.ToLower(link)
	for _, p := range providers {
		if strings.Contains(lower, p.fragment) {
			return p.platform, true
		}
	}
	return "", false
}

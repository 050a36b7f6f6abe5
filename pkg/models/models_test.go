package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.AutoStart)
	assert.Equal(t, 10*time.Minute, cfg.ReminderLead())
	assert.Equal(t, 15*time.Second, cfg.ReminderInterval())
	assert.Equal(t, 8*time.Second, cfg.NotificationTTL())
	assert.Equal(t, time.Hour, cfg.MeetingDuration())
	assert.Equal(t, "You", cfg.OwnerName)
	assert.Equal(t, "Kore", cfg.VoiceName)
	assert.True(t, cfg.SpeakConfirmations)
	require.NoError(t, cfg.Validate())
}

func TestConfig_ValidateRejectsBadRanges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReminderIntervalSec = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in     string
		want   Platform
		wantOK bool
	}{
		{"Google Meet", PlatformGoogleMeet, true},
		{"  google   meet ", PlatformGoogleMeet, true},
		{"Teams", PlatformTeams, true},
		{"Microsoft Teams", PlatformTeams, true},
		{"zoom", PlatformZoom, true},
		{"Webex", PlatformWebex, true},
		{"Jitsi", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePlatform(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, PlatformOther, PlatformOrOther("Jitsi"))
}

func TestPlatform_DefaultLink(t *testing.T) {
	assert.Equal(t, "https://meet.google.com/new", PlatformGoogleMeet.DefaultLink())
	assert.Equal(t, "https://meet.google.com/new", PlatformOther.DefaultLink())
	for _, p := range Platforms {
		assert.NotEmpty(t, p.DefaultLink(), p)
	}
}

func TestParsedDraft_MergeIntoKeepsExistingFields(t *testing.T) {
	d := NewDraft()
	d.Date = "2024-03-25"

	merged := ParsedDraft{Title: "Sync"}.MergeInto(d)

	assert.Equal(t, "Sync", merged.Title)
	assert.Equal(t, "2024-03-25", merged.Date)
	assert.Equal(t, string(PlatformGoogleMeet), merged.Platform)
}

func TestValidateMeeting(t *testing.T) {
	start := time.Date(2024, 3, 25, 14, 0, 0, 0, time.UTC)
	m := Meeting{
		ID:        "m-1",
		Title:     "Sync",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Platform:  PlatformZoom,
		Link:      "https://zoom.us/j/1",
		Source:    SourceCalendar,
	}
	require.NoError(t, Validate(m))

	bad := m
	bad.EndTime = start
	assert.Error(t, Validate(bad))

	bad = m
	bad.Title = ""
	assert.Error(t, Validate(bad))

	bad = m
	bad.Platform = "Jitsi"
	assert.Error(t, Validate(bad))

	free := m
	free.Link = "meet.google.com/abc-defg-hij"
	assert.NoError(t, Validate(free), "links are free text")
}

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"meet.google.com/abc-defg-hij", "https://meet.google.com/abc-defg-hij"},
		{"  zoom.us/j/123456789 ", "https://zoom.us/j/123456789"},
		{"https://zoom.us/j/1", "https://zoom.us/j/1"},
		{"http://example.com", "http://example.com"},
		{"Room 4", "Room 4"},
		{"localhost", "localhost"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLink(tt.in), tt.in)
	}
}

func TestMeeting_CloneDetachesParticipants(t *testing.T) {
	m := Meeting{Participants: []string{"You"}}
	c := m.Clone()
	c.Participants[0] = "Alice"
	assert.Equal(t, "You", m.Participants[0])
}

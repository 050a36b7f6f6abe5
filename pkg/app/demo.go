package app

import (
	"time"

	"github.com/borgmon/jumpin/pkg/models"
)

// SeedDemo adds the two sample meetings, one and four hours after now.
// Seeding is silent: no notification and no view switch.
func (a *App) SeedDemo(now time.Time) []models.Meeting {
	seeds := []models.Meeting{
		{
			Title:        "Product Strategy Sync",
			StartTime:    now.Add(time.Hour),
			Platform:     models.PlatformGoogleMeet,
			Link:         "https://meet.google.com/abc-defg-hij",
			Participants: []string{"Alice Smith", "Bob Jones", "You"},
			Source:       models.SourceGmail,
		},
		{
			Title:        "Design Review & Assets",
			StartTime:    now.Add(4 * time.Hour),
			Platform:     models.PlatformZoom,
			Link:         "https://zoom.us/j/123456789",
			Participants: []string{"Charlie Davis", "Dana White"},
			Source:       models.SourceDiscord,
		},
	}

	var all []models.Meeting
	for _, m := range seeds {
		m.ID = a.ids.NewID()
		m.StartTime = m.StartTime.UTC()
		m.EndTime = m.StartTime.Add(time.Hour)
		all = a.Meetings.Add(m)
	}
	a.logger.Debug("demo meetings seeded")
	return all
}

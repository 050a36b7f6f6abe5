package dashboard

import (
	"testing"
	"time"

	"github.com/borgmon/jumpin/pkg/models"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC)

func at(id string, start time.Time, p models.Platform) models.Meeting {
	return models.Meeting{ID: id, Title: id, StartTime: start, EndTime: start.Add(time.Hour), Platform: p}
}

func ids(ms []models.Meeting) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func sample() []models.Meeting {
	return []models.Meeting{
		at("yesterday", now.Add(-24*time.Hour), models.PlatformZoom),
		at("earlier", now.Add(-2*time.Hour), models.PlatformGoogleMeet),
		at("soon", now.Add(10*time.Minute), models.PlatformGoogleMeet),
		at("tonight", time.Date(2024, 3, 25, 23, 30, 0, 0, time.UTC), models.PlatformTeams),
		at("tomorrow", time.Date(2024, 3, 26, 0, 0, 0, 0, time.UTC), models.PlatformZoom),
		at("d2", now.Add(48*time.Hour), models.PlatformDiscord),
		at("d3", now.Add(72*time.Hour), models.PlatformZoom),
		at("d4", now.Add(96*time.Hour), models.PlatformZoom),
	}
}

func TestToday(t *testing.T) {
	assert.Equal(t, []string{"earlier", "soon", "tonight"}, ids(Today(sample(), now)))
}

func TestToday_UsesNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 23:30 UTC on the 25th is already the 26th in Tokyo
	got := Today(sample(), now.In(tokyo))
	assert.Equal(t, []string{"earlier", "soon"}, ids(got))
}

func TestUpcoming(t *testing.T) {
	assert.Equal(t, []string{"tomorrow", "d2", "d3"}, ids(Upcoming(sample(), now, UpcomingLimit)))
	assert.Len(t, Upcoming(sample(), now, 0), 4)
}

func TestPlatformCounts(t *testing.T) {
	assert.Equal(t, []PlatformCount{
		{models.PlatformGoogleMeet, 2},
		{models.PlatformZoom, 4},
		{models.PlatformTeams, 1},
		{models.PlatformDiscord, 1},
	}, PlatformCounts(sample()))
	assert.Empty(t, PlatformCounts(nil))
}

func TestIsSoon(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want bool
	}{
		{-time.Minute, false},
		{0, false},
		{time.Minute, true},
		{14*time.Minute + 59*time.Second, true},
		{15 * time.Minute, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSoon(at("m", now.Add(tt.in), models.PlatformZoom), now), tt.in.String())
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample(), now)
	assert.Len(t, s.Today, 3)
	assert.Len(t, s.Upcoming, 3)
	assert.Equal(t, 8, s.Total)
}

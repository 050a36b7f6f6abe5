// Package dashboard derives the dashboard's sections from a meeting snapshot.
package dashboard

import (
	"time"

	"github.com/borgmon/jumpin/pkg/models"
)

// SoonWindow is how close a meeting must be for "Jump In" to be highlighted
const SoonWindow = 15 * time.Minute

// UpcomingLimit is the number of meetings shown in the next-days preview
const UpcomingLimit = 3

// PlatformCount is one row of the platform breakdown
type PlatformCount struct {
	Platform models.Platform
	Count    int
}

// Today returns the meetings starting on now's calendar day, in now's location
func Today(meetings []models.Meeting, now time.Time) []models.Meeting {
	var out []models.Meeting
	for _, m := range meetings {
		if sameDay(m.StartTime.In(now.Location()), now) {
			out = append(out, m)
		}
	}
	return out
}

// Upcoming returns up to limit meetings on days after today
func Upcoming(meetings []models.Meeting, now time.Time, limit int) []models.Meeting {
	y, mo, d := now.Date()
	tomorrow := time.Date(y, mo, d+1, 0, 0, 0, 0, now.Location())

	var out []models.Meeting
	for _, m := range meetings {
		if limit > 0 && len(out) == limit {
			break
		}
		if !m.StartTime.Before(tomorrow) {
			out = append(out, m)
		}
	}
	return out
}

// PlatformCounts counts meetings per platform in display order, omitting zeros
func PlatformCounts(meetings []models.Meeting) []PlatformCount {
	counts := make(map[models.Platform]int)
	for _, m := range meetings {
		counts[m.Platform]++
	}

	var out []PlatformCount
	for _, p := range models.Platforms {
		if n := counts[p]; n > 0 {
			out = append(out, PlatformCount{Platform: p, Count: n})
		}
	}
	return out
}

// IsSoon reports whether m starts in less than SoonWindow
func IsSoon(m models.Meeting, now time.Time) bool {
	until := m.StartTime.Sub(now)
	return until > 0 && until < SoonWindow
}

// Summary is everything the dashboard renders
type Summary struct {
	Today     []models.Meeting
	Upcoming  []models.Meeting
	Platforms []PlatformCount
	Total     int
}

// Summarize builds the dashboard sections from a store snapshot
func Summarize(meetings []models.Meeting, now time.Time) Summary {
	return Summary{
		Today:     Today(meetings, now),
		Upcoming:  Upcoming(meetings, now, UpcomingLimit),
		Platforms: PlatformCounts(meetings),
		Total:     len(meetings),
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Package conflict detects overlapping meetings.
package conflict

import (
	"time"

	"github.com/borgmon/jumpin/pkg/models"
)

// DefaultDuration is the length assumed for a candidate with no explicit end
const DefaultDuration = time.Hour

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Find returns the first meeting, in the given order, overlapping the
// candidate interval, or nil when there is none.
func Find(start, end time.Time, existing []models.Meeting) *models.Meeting {
	for i := range existing {
		if Overlaps(start, end, existing[i].StartTime, existing[i].EndTime) {
			m := existing[i].Clone()
			return &m
		}
	}
	return nil
}

// FindAt is Find for a candidate lasting duration from start. A
// non-positive duration means DefaultDuration.
func FindAt(start time.Time, duration time.Duration, existing []models.Meeting) *models.Meeting {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Find(start, start.Add(duration), existing)
}

package reminder

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/borgmon/jumpin/pkg/clock"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/borgmon/jumpin/pkg/store"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 25, 14, 0, 0, 0, time.UTC)

type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Push(message string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, message)
	return message
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func meetingAt(id, title string, start time.Time) models.Meeting {
	return models.Meeting{
		ID:        id,
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Platform:  models.PlatformZoom,
	}
}

func newTestScheduler(meetings ...models.Meeting) (*Scheduler, *store.MeetingStore, *clock.Fake, *recorder) {
	c := clock.NewFake(base)
	ms := store.NewMeetingStore(meetings...)
	rec := &recorder{}
	return NewScheduler(ms, rec, Config{Clock: c}), ms, c, rec
}

func TestTick_MeetingInFiveMinutes(t *testing.T) {
	s, ms, c, rec := newTestScheduler(meetingAt("m1", "Standup", base.Add(5*time.Minute)))

	marked := s.Tick()
	require.Len(t, marked, 1)
	assert.Equal(t, []string{`Meeting "Standup" starts in 10 minutes!`}, rec.messages())

	m, ok := ms.Get("m1")
	require.True(t, ok)
	assert.True(t, m.IsReminded)

	c.Advance(15 * time.Second)
	assert.Empty(t, s.Tick())
	assert.Len(t, rec.messages(), 1)
}

func TestTick_Window(t *testing.T) {
	tests := []struct {
		name  string
		start time.Duration
		want  bool
	}{
		{"past", -time.Minute, false},
		{"now", 0, false},
		{"one second", time.Second, true},
		{"exactly lead", 10 * time.Minute, true},
		{"just beyond lead", 10*time.Minute + time.Second, false},
		{"hours away", 4 * time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ms, _, rec := newTestScheduler(meetingAt("m", "X", base.Add(tt.start)))
			s.Tick()

			m, _ := ms.Get("m")
			assert.Equal(t, tt.want, m.IsReminded)
			assert.Equal(t, tt.want, len(rec.messages()) == 1)
		})
	}
}

func TestTick_MeetingEntersWindowLater(t *testing.T) {
	s, ms, c, rec := newTestScheduler(meetingAt("m", "Later", base.Add(20*time.Minute)))

	var changes int
	ms.OnChange(func([]models.Meeting) { changes++ })

	for i := 0; i < 40; i++ {
		s.Tick()
		c.Advance(15 * time.Second)
	}
	assert.Len(t, rec.messages(), 1)
	assert.Equal(t, 1, changes, "store is only written by the tick that marks the meeting")
}

func TestTick_BatchOfMeetings(t *testing.T) {
	s, ms, _, rec := newTestScheduler(
		meetingAt("a", "A", base.Add(2*time.Minute)),
		meetingAt("b", "B", base.Add(8*time.Minute)),
		meetingAt("c", "C", base.Add(30*time.Minute)),
	)

	var snapshots int
	ms.OnChange(func([]models.Meeting) { snapshots++ })

	assert.Len(t, s.Tick(), 2)
	assert.Equal(t, 1, snapshots)
	assert.Equal(t, []string{
		`Meeting "A" starts in 10 minutes!`,
		`Meeting "B" starts in 10 minutes!`,
	}, rec.messages())
}

func TestTick_AlreadyRemindedNeverRefires(t *testing.T) {
	m := meetingAt("m", "Done", base.Add(5*time.Minute))
	m.IsReminded = true
	s, _, _, rec := newTestScheduler(m)

	s.Tick()
	assert.Empty(t, rec.messages())
}

func TestStartStop(t *testing.T) {
	ms := store.NewMeetingStore(meetingAt("m", "Soon", time.Now().Add(5*time.Minute)))
	rec := &recorder{}
	s := NewScheduler(ms, rec, Config{Interval: time.Second})

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return len(rec.messages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Len(t, rec.messages(), 1)
}

func TestStop_WaitsForFirstTick(t *testing.T) {
	for i := 0; i < 50; i++ {
		s, ms, _, rec := newTestScheduler(meetingAt("m", "Standup", base.Add(5*time.Minute)))

		require.NoError(t, s.Start())
		s.Stop()

		m, ok := ms.Get("m")
		require.True(t, ok)
		assert.True(t, m.IsReminded)
		assert.Len(t, rec.messages(), 1)
	}
}

func TestMessage_UsesLeadMinutes(t *testing.T) {
	m := meetingAt("m", "Sync", base)
	assert.Equal(t, `Meeting "Sync" starts in 5 minutes!`, Message(m, 5*time.Minute))
}

func TestProperty_RemindedAtMostOnce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("each meeting is reminded once and only while in the window", prop.ForAll(
		func(offsets []int, ticks int) bool {
			meetings := make([]models.Meeting, len(offsets))
			for i, off := range offsets {
				meetings[i] = meetingAt(fmt.Sprintf("m%d", i), "M", base.Add(time.Duration(off)*time.Second))
			}
			s, ms, c, rec := newTestScheduler(meetings...)

			for i := 0; i < ticks; i++ {
				now := c.Now()
				before := ms.List()
				s.Tick()
				after := ms.List()
				for j := range after {
					flipped := !before[j].IsReminded && after[j].IsReminded
					if flipped && !IsDue(after[j], now, DefaultLead) {
						return false
					}
					if before[j].IsReminded && !after[j].IsReminded {
						return false
					}
				}
				c.Advance(DefaultInterval)
			}

			reminded := 0
			for _, m := range ms.List() {
				if m.IsReminded {
					reminded++
				}
			}
			return reminded == len(rec.messages())
		},
		gen.SliceOfN(8, gen.IntRange(-600, 3600)),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}

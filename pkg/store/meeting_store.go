package store

import (
	"sort"
	"sync"

	"github.com/borgmon/jumpin/pkg/models"
)

// MeetingStore owns the canonical, start-time ordered list of meetings.
// Every mutation builds a new slice and swaps it in, so a snapshot handed
// out by List is never modified afterwards.
type MeetingStore struct {
	mu       sync.RWMutex
	meetings []models.Meeting

	listenersMu sync.RWMutex
	listeners   []*meetingListener
}

type meetingListener struct {
	fn func([]models.Meeting)
}

// NewMeetingStore creates a MeetingStore holding the given meetings
func NewMeetingStore(initial ...models.Meeting) *MeetingStore {
	ms := &MeetingStore{}
	if len(initial) > 0 {
		ms.meetings = sortByStart(cloneAll(initial))
	}
	return ms
}

// OnChange registers a listener called with the new snapshot after every
// change. The returned func removes it.
func (ms *MeetingStore) OnChange(fn func([]models.Meeting)) (unsubscribe func()) {
	l := &meetingListener{fn: fn}
	ms.listenersMu.Lock()
	ms.listeners = append(ms.listeners, l)
	ms.listenersMu.Unlock()

	return func() {
		ms.listenersMu.Lock()
		defer ms.listenersMu.Unlock()
		for i, candidate := range ms.listeners {
			if candidate == l {
				ms.listeners = append(ms.listeners[:i:i], ms.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered change listeners
func (ms *MeetingStore) Listeners() int {
	ms.listenersMu.RLock()
	defer ms.listenersMu.RUnlock()
	return len(ms.listeners)
}

// Add inserts a meeting, re-sorts by start time and returns the new collection.
// Ids are not checked for duplicates.
func (ms *MeetingStore) Add(meeting models.Meeting) []models.Meeting {
	ms.mu.Lock()
	next := make([]models.Meeting, 0, len(ms.meetings)+1)
	next = append(next, ms.meetings...)
	next = append(next, meeting.Clone())
	next = sortByStart(next)
	ms.meetings = next
	ms.mu.Unlock()

	ms.notify(next)
	return cloneAll(next)
}

// UpdateReminded marks one meeting as reminded. Returns false if no meeting
// has that id or it was already reminded.
func (ms *MeetingStore) UpdateReminded(id string) bool {
	marked := ms.MarkDue(func(m models.Meeting) bool {
		return m.ID == id
	})
	return len(marked) > 0
}

// MarkDue marks every not-yet-reminded meeting accepted by due as reminded
// in a single swap and returns the marked meetings. When nothing qualifies
// the collection and its listeners are left untouched.
func (ms *MeetingStore) MarkDue(due func(models.Meeting) bool) []models.Meeting {
	ms.mu.Lock()

	var marked []models.Meeting
	var next []models.Meeting
	for i, m := range ms.meetings {
		if m.IsReminded || !due(m) {
			continue
		}
		if next == nil {
			next = make([]models.Meeting, len(ms.meetings))
			copy(next, ms.meetings)
		}
		next[i].IsReminded = true
		marked = append(marked, next[i].Clone())
	}

	if next == nil {
		ms.mu.Unlock()
		return nil
	}
	ms.meetings = next
	ms.mu.Unlock()

	ms.notify(next)
	return marked
}

// List returns a snapshot of all meetings in start-time order
func (ms *MeetingStore) List() []models.Meeting {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return cloneAll(ms.meetings)
}

// Get returns a meeting by id
func (ms *MeetingStore) Get(id string) (models.Meeting, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for _, m := range ms.meetings {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return models.Meeting{}, false
}

// Len returns the number of meetings
func (ms *MeetingStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.meetings)
}

func (ms *MeetingStore) notify(snapshot []models.Meeting) {
	ms.listenersMu.RLock()
	listeners := make([]*meetingListener, len(ms.listeners))
	copy(listeners, ms.listeners)
	ms.listenersMu.RUnlock()

	for _, l := range listeners {
		l.fn(cloneAll(snapshot))
	}
}

func sortByStart(meetings []models.Meeting) []models.Meeting {
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})
	return meetings
}

func cloneAll(meetings []models.Meeting) []models.Meeting {
	if meetings == nil {
		return nil
	}
	out := make([]models.Meeting, len(meetings))
	for i, m := range meetings {
		out[i] = m.Clone()
	}
	return out
}

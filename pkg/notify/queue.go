// Package notify holds the self-expiring notification queue.
package notify

import (
	"sync"
	"time"

	"github.com/borgmon/jumpin/pkg/clock"
	"github.com/borgmon/jumpin/pkg/ident"
	"github.com/borgmon/jumpin/pkg/models"
	"go.uber.org/zap"
)

// DefaultTTL is how long a notification stays in the queue
const DefaultTTL = 8 * time.Second

// Queue is an ordered, most-recent-first list of notifications. Each entry
// removes itself after the TTL; removal is keyed by id so it is unaffected
// by pushes and removals that happened in between.
type Queue struct {
	ttl    time.Duration
	clock  clock.Clock
	ids    ident.Generator
	logger *zap.Logger

	mu     sync.Mutex
	items  []models.Notification
	timers map[string]clock.Timer
	closed bool

	listenersMu sync.RWMutex
	listeners   []*listener
}

type listener struct {
	fn func([]models.Notification)
}

// Option configures a Queue
type Option func(*Queue)

// WithClock replaces the wall clock
func WithClock(c clock.Clock) Option {
	return func(q *Queue) { q.clock = c }
}

// WithIDs replaces the id generator
func WithIDs(g ident.Generator) Option {
	return func(q *Queue) { q.ids = g }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(q *Queue) { q.logger = l }
}

// NewQueue creates a Queue whose entries live for ttl (DefaultTTL if ttl <= 0)
func NewQueue(ttl time.Duration, opts ...Option) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &Queue{
		ttl:    ttl,
		clock:  clock.Real(),
		ids:    ident.UUID(),
		logger: zap.NewNop(),
		timers: make(map[string]clock.Timer),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// OnChange registers a listener called with the new snapshot after every
// push or removal. The returned func removes it.
func (q *Queue) OnChange(fn func([]models.Notification)) (unsubscribe func()) {
	l := &listener{fn: fn}
	q.listenersMu.Lock()
	q.listeners = append(q.listeners, l)
	q.listenersMu.Unlock()

	return func() {
		q.listenersMu.Lock()
		defer q.listenersMu.Unlock()
		for i, candidate := range q.listeners {
			if candidate == l {
				q.listeners = append(q.listeners[:i:i], q.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered change listeners
func (q *Queue) Listeners() int {
	q.listenersMu.RLock()
	defer q.listenersMu.RUnlock()
	return len(q.listeners)
}

// Push prepends a notification and schedules its removal. Returns the new id.
func (q *Queue) Push(message string) string {
	id := q.ids.NewID()
	n := models.Notification{ID: id, Message: message, CreatedAt: q.clock.Now()}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.logger.Debug("notification dropped after close", zap.String("message", message))
		return id
	}
	next := make([]models.Notification, 0, len(q.items)+1)
	next = append(next, n)
	next = append(next, q.items...)
	q.items = next
	q.timers[id] = q.clock.AfterFunc(q.ttl, func() {
		q.expire(id)
	})
	q.mu.Unlock()

	q.logger.Debug("notification pushed", zap.String("id", id), zap.String("message", message))
	q.notify(next)
	return id
}

// Dismiss removes a notification before its TTL. Returns false if it is already gone.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	if t, ok := q.timers[id]; ok {
		t.Stop()
	}
	next, removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.notify(next)
	}
	return removed
}

// List returns a snapshot, most recent first
func (q *Queue) List() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.Notification(nil), q.items...)
}

// Len returns the number of visible notifications
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close cancels every pending expiry and clears the queue
func (q *Queue) Close() {
	q.mu.Lock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	hadItems := len(q.items) > 0
	q.items = nil
	q.closed = true
	q.mu.Unlock()

	if hadItems {
		q.notify(nil)
	}
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	next, removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.logger.Debug("notification expired", zap.String("id", id))
		q.notify(next)
	}
}

// removeLocked must be called with q.mu held
func (q *Queue) removeLocked(id string) ([]models.Notification, bool) {
	delete(q.timers, id)

	idx := -1
	for i, n := range q.items {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	next := make([]models.Notification, 0, len(q.items)-1)
	next = append(next, q.items[:idx]...)
	next = append(next, q.items[idx+1:]...)
	q.items = next
	return next, true
}

func (q *Queue) notify(snapshot []models.Notification) {
	q.listenersMu.RLock()
	listeners := make([]*listener, len(q.listeners))
	copy(listeners, q.listeners)
	q.listenersMu.RUnlock()

	for _, l := range listeners {
		l.fn(append([]models.Notification(nil), snapshot...))
	}
}

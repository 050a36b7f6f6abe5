// Package reminder periodically checks the meeting store and announces
// meetings that are about to start.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/borgmon/jumpin/pkg/clock"
	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/borgmon/jumpin/pkg/store"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultLead     = 10 * time.Minute
	DefaultInterval = 15 * time.Second
)

// Notifier receives one message per reminded meeting
type Notifier interface {
	Push(message string) string
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string) string

func (f NotifierFunc) Push(message string) string {
	return f(message)
}

// Scheduler marks meetings as reminded once they enter the lead window
type Scheduler struct {
	store    *store.MeetingStore
	notifier Notifier
	clock    clock.Clock
	lead     time.Duration
	interval time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	cron  *cron.Cron
	tick  sync.Mutex
	first sync.WaitGroup
}

// Config holds the optional Scheduler settings
type Config struct {
	Lead     time.Duration
	Interval time.Duration
	Clock    clock.Clock
	Logger   *zap.Logger
}

// NewScheduler creates a Scheduler. Zero Config fields take their defaults.
func NewScheduler(ms *store.MeetingStore, notifier Notifier, cfg Config) *Scheduler {
	s := &Scheduler{
		store:    ms,
		notifier: notifier,
		clock:    cfg.Clock,
		lead:     cfg.Lead,
		interval: cfg.Interval,
		logger:   logger.OrNop(cfg.Logger),
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.lead <= 0 {
		s.lead = DefaultLead
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	return s
}

// Start runs one tick immediately and then every interval until Stop
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	c := cron.New(cron.WithLogger(logger.Cron(s.logger)), cron.WithChain(cron.Recover(logger.Cron(s.logger))))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() { s.Tick() }); err != nil {
		return fmt.Errorf("schedule reminder tick: %w", err)
	}
	c.Start()
	s.cron = c

	s.logger.Info("reminder scheduler started",
		zap.Duration("interval", s.interval),
		zap.Duration("lead", s.lead))

	s.first.Add(1)
	go func() {
		defer s.first.Done()
		s.Tick()
	}()
	return nil
}

// Stop cancels the schedule and waits for a running tick to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	// the immediate first tick runs outside cron
	s.first.Wait()
	s.logger.Info("reminder scheduler stopped")
}

// Tick marks every due meeting as reminded and emits one message per meeting.
// It returns the meetings reminded by this tick.
func (s *Scheduler) Tick() []models.Meeting {
	s.tick.Lock()
	defer s.tick.Unlock()

	now := s.clock.Now()
	marked := s.store.MarkDue(func(m models.Meeting) bool {
		return IsDue(m, now, s.lead)
	})

	for _, m := range marked {
		s.logger.Info("meeting reminder",
			zap.String("id", m.ID),
			zap.String("title", m.Title),
			zap.Time("start", m.StartTime))
		if s.notifier != nil {
			s.notifier.Push(Message(m, s.lead))
		}
	}
	return marked
}

// IsDue reports whether m starts within (0, lead] of now
func IsDue(m models.Meeting, now time.Time, lead time.Duration) bool {
	until := m.StartTime.Sub(now)
	return until > 0 && until <= lead
}

// Message is the reminder text for m
func Message(m models.Meeting, lead time.Duration) string {
	return fmt.Sprintf("Meeting \"%s\" starts in %d minutes!", m.Title, int(lead.Round(time.Minute)/time.Minute))
}

// Run starts the scheduler and stops it when ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

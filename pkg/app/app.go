// Package app wires the meeting store, notification queue, reminder
// scheduler and draft composers into one application state.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/borgmon/jumpin/pkg/clock"
	"github.com/borgmon/jumpin/pkg/dashboard"
	"github.com/borgmon/jumpin/pkg/draft"
	"github.com/borgmon/jumpin/pkg/ident"
	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/borgmon/jumpin/pkg/notify"
	"github.com/borgmon/jumpin/pkg/reminder"
	"github.com/borgmon/jumpin/pkg/store"
	"go.uber.org/zap"
)

// View is the screen currently shown
type View string

const (
	ViewDashboard View = "dashboard"
	ViewSchedule  View = "schedule"
	ViewPlatforms View = "platforms"
)

// Options configures an App. Zero values take defaults.
type Options struct {
	Config   *models.Config
	Clock    clock.Clock
	IDs      ident.Generator
	Location *time.Location
	Logger   *zap.Logger

	Parser  draft.Parser
	Voice   draft.VoiceCapture
	Speaker draft.Speaker
}

// App is the explicit application-state container
type App struct {
	Meetings      *store.MeetingStore
	Notifications *notify.Queue
	Reminders     *reminder.Scheduler

	clock    clock.Clock
	ids      ident.Generator
	location *time.Location
	logger   *zap.Logger

	parser  draft.Parser
	voice   draft.VoiceCapture
	speaker draft.Speaker

	mu        sync.Mutex
	config    *models.Config
	view      View
	sources   []models.ConnectedSource
	schedule  *draft.Composer
	composers []*draft.Composer

	listenersMu       sync.RWMutex
	viewListeners     []*viewListener
	reminderListeners []*reminderListener
}

type viewListener struct{ fn func(View) }

type reminderListener struct{ fn func(string) }

// New creates an App with an empty meeting store
func New(opts Options) *App {
	a := &App{
		config:   opts.Config,
		clock:    opts.Clock,
		ids:      opts.IDs,
		location: opts.Location,
		logger:   logger.OrNop(opts.Logger),
		parser:   opts.Parser,
		voice:    opts.Voice,
		speaker:  opts.Speaker,
		view:     ViewDashboard,
		sources:  models.DefaultSources(),
	}
	if a.config == nil {
		a.config = models.DefaultConfig()
	}
	if a.clock == nil {
		a.clock = clock.Real()
	}
	if a.ids == nil {
		a.ids = ident.UUID()
	}
	if a.location == nil {
		a.location = time.Local
	}

	a.Meetings = store.NewMeetingStore()
	a.Notifications = notify.NewQueue(a.config.NotificationTTL(),
		notify.WithClock(a.clock),
		notify.WithIDs(a.ids),
		notify.WithLogger(a.logger.Named("notify")))
	a.Reminders = reminder.NewScheduler(a.Meetings, reminder.NotifierFunc(a.remind), reminder.Config{
		Lead:     a.config.ReminderLead(),
		Interval: a.config.ReminderInterval(),
		Clock:    a.clock,
		Logger:   a.logger.Named("reminder"),
	})
	a.schedule = a.NewComposer()
	return a
}

// Config returns the active configuration
func (a *App) Config() *models.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.config
}

// ApplyConfig swaps in a saved configuration. Owner name and spoken
// confirmations take effect on the schedule draft immediately; reminder,
// notification and logging settings are read once at startup.
func (a *App) ApplyConfig(cfg *models.Config) {
	if cfg == nil {
		return
	}
	a.mu.Lock()
	a.config = cfg
	a.mu.Unlock()

	a.schedule.SetOwner(cfg.OwnerName)
	a.schedule.SetSpeaker(a.speakerIfEnabled())
}

// Start begins the reminder schedule
func (a *App) Start() error {
	return a.Reminders.Start()
}

// Shutdown stops the reminder schedule, waits for spoken confirmations
// and drops every pending notification timer
func (a *App) Shutdown() {
	a.Reminders.Stop()

	a.mu.Lock()
	composers := a.composers
	a.composers = nil
	a.mu.Unlock()
	for _, c := range composers {
		c.Wait()
	}

	a.Notifications.Close()
	a.logger.Info("shutdown complete")
}

// Now returns the app clock's current time in the display location
func (a *App) Now() time.Time {
	return a.clock.Now().In(a.location)
}

// Location is where drafts are interpreted and meetings displayed
func (a *App) Location() *time.Location {
	return a.location
}

// OnReminder registers a listener called for every reminder message, after
// it has been queued. The returned func removes it.
func (a *App) OnReminder(fn func(message string)) (unsubscribe func()) {
	l := &reminderListener{fn: fn}
	a.listenersMu.Lock()
	a.reminderListeners = append(a.reminderListeners, l)
	a.listenersMu.Unlock()

	return func() {
		a.listenersMu.Lock()
		defer a.listenersMu.Unlock()
		for i, candidate := range a.reminderListeners {
			if candidate == l {
				a.reminderListeners = append(a.reminderListeners[:i:i], a.reminderListeners[i+1:]...)
				return
			}
		}
	}
}

func (a *App) remind(message string) string {
	id := a.Notifications.Push(message)

	a.listenersMu.RLock()
	listeners := append([]*reminderListener{}, a.reminderListeners...)
	a.listenersMu.RUnlock()
	for _, l := range listeners {
		l.fn(message)
	}
	return id
}

// Schedule returns the draft composer behind the schedule view. Its draft
// is discarded whenever the app navigates away from ViewSchedule.
func (a *App) Schedule() *draft.Composer {
	return a.schedule
}

// NewComposer creates a draft composer bound to this app's store and settings
func (a *App) NewComposer() *draft.Composer {
	cfg := a.Config()
	c := draft.NewComposer(draft.Config{
		Store:    a.Meetings,
		Clock:    a.clock,
		Location: a.location,
		Duration: cfg.MeetingDuration(),
		Owner:    cfg.OwnerName,
		IDs:      a.ids,
		Parser:   a.parser,
		Voice:    a.voice,
		Speaker:  a.speakerIfEnabled(),
		Logger:   a.logger.Named("draft"),
	})

	a.mu.Lock()
	a.composers = append(a.composers, c)
	a.mu.Unlock()
	return c
}

func (a *App) speakerIfEnabled() draft.Speaker {
	if !a.Config().SpeakConfirmations {
		return nil
	}
	return a.speaker
}

// AddMeeting stores m, announces it and switches to the dashboard
func (a *App) AddMeeting(m models.Meeting) []models.Meeting {
	all := a.Meetings.Add(m)
	a.scheduled(m)
	return all
}

// Commit commits the composer's draft. On success the meeting is announced
// and the dashboard is shown, as with AddMeeting.
func (a *App) Commit(c *draft.Composer) (models.Meeting, bool) {
	m, ok := c.Commit()
	if ok {
		a.scheduled(m)
	}
	return m, ok
}

func (a *App) scheduled(m models.Meeting) {
	a.Notifications.Push(fmt.Sprintf("Meeting \"%s\" scheduled.", m.Title))
	a.SetView(ViewDashboard)
}

// Dismiss removes a notification before it expires
func (a *App) Dismiss(id string) bool {
	return a.Notifications.Dismiss(id)
}

// View returns the active view
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// SetView switches the active view. Unknown views fall back to the dashboard.
func (a *App) SetView(v View) {
	switch v {
	case ViewDashboard, ViewSchedule, ViewPlatforms:
	default:
		v = ViewDashboard
	}

	a.mu.Lock()
	prev := a.view
	a.view = v
	a.mu.Unlock()

	if prev == v {
		return
	}
	if prev == ViewSchedule {
		a.schedule.Reset()
	}

	a.listenersMu.RLock()
	listeners := append([]*viewListener{}, a.viewListeners...)
	a.listenersMu.RUnlock()
	for _, l := range listeners {
		l.fn(v)
	}
}

// OnViewChange registers a listener for view switches. The returned func
// removes it.
func (a *App) OnViewChange(fn func(View)) (unsubscribe func()) {
	l := &viewListener{fn: fn}
	a.listenersMu.Lock()
	a.viewListeners = append(a.viewListeners, l)
	a.listenersMu.Unlock()

	return func() {
		a.listenersMu.Lock()
		defer a.listenersMu.Unlock()
		for i, candidate := range a.viewListeners {
			if candidate == l {
				a.viewListeners = append(a.viewListeners[:i:i], a.viewListeners[i+1:]...)
				return
			}
		}
	}
}

// Summary returns the dashboard sections for the current store contents
func (a *App) Summary() dashboard.Summary {
	return dashboard.Summarize(a.Meetings.List(), a.Now())
}

// Sources returns the platforms screen entries
func (a *App) Sources() []models.ConnectedSource {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.ConnectedSource(nil), a.sources...)
}

// ToggleSource flips a source's connected flag. Nothing is synced.
func (a *App) ToggleSource(id string) (models.ConnectedSource, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.sources {
		if a.sources[i].ID != id {
			continue
		}
		s := &a.sources[i]
		s.Connected = !s.Connected
		if s.Connected {
			s.LastSynced = "Just now"
		} else {
			s.LastSynced = ""
		}
		return *s, true
	}
	return models.ConnectedSource{}, false
}

// Package draft holds the meeting draft being composed in the schedule view,
// fed by manual edits and by the natural-language assistant.
package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/borgmon/jumpin/pkg/clock"
	"github.com/borgmon/jumpin/pkg/conflict"
	"github.com/borgmon/jumpin/pkg/ident"
	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/borgmon/jumpin/pkg/store"
	"go.uber.org/zap"
)

var (
	ErrUnknownField = errors.New("unknown draft field")
	ErrBusy         = errors.New("a request is already in progress")
	ErrEmptyInput   = errors.New("input is empty")
	ErrNoParser     = errors.New("language parsing is not available")
)

// Parser turns free text into a partial draft
type Parser interface {
	Parse(ctx context.Context, text string, today time.Time) (models.ParsedDraft, error)
}

// VoiceCapture records one utterance and returns its transcript
type VoiceCapture interface {
	Available() bool
	Capture(ctx context.Context) (string, error)
}

// Speaker reads text aloud
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Config wires a Composer. Only Store is required.
type Config struct {
	Store    *store.MeetingStore
	Clock    clock.Clock
	Location *time.Location
	Duration time.Duration
	Owner    string
	IDs      ident.Generator
	Parser   Parser
	Voice    VoiceCapture
	Speaker  Speaker
	Logger   *zap.Logger
}

// Composer owns one draft. All methods are safe for concurrent use.
type Composer struct {
	store    *store.MeetingStore
	clock    clock.Clock
	location *time.Location
	duration time.Duration
	owner    string
	ids      ident.Generator
	parser   Parser
	voice    VoiceCapture
	speaker  Speaker
	logger   *zap.Logger

	mu    sync.Mutex
	draft models.Draft

	processing atomic.Bool
	listening  atomic.Bool
	speaking   sync.WaitGroup

	listenersMu sync.RWMutex
	listeners   []*listener
}

type listener struct {
	fn func(State)
}

// State is what the schedule view renders
type State struct {
	Draft      models.Draft
	Processing bool
	Listening  bool
}

// NewComposer creates a Composer with an empty draft
func NewComposer(cfg Config) *Composer {
	c := &Composer{
		store:    cfg.Store,
		clock:    cfg.Clock,
		location: cfg.Location,
		duration: cfg.Duration,
		owner:    cfg.Owner,
		ids:      cfg.IDs,
		parser:   cfg.Parser,
		voice:    cfg.Voice,
		speaker:  cfg.Speaker,
		logger:   logger.OrNop(cfg.Logger),
		draft:    models.NewDraft(),
	}
	if c.store == nil {
		c.store = store.NewMeetingStore()
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	if c.location == nil {
		c.location = time.Local
	}
	if c.duration <= 0 {
		c.duration = conflict.DefaultDuration
	}
	if c.owner == "" {
		c.owner = "You"
	}
	if c.ids == nil {
		c.ids = ident.UUID()
	}
	return c
}

// OnChange registers a listener for draft edits and busy state changes.
// The returned func removes it.
func (c *Composer) OnChange(fn func(State)) (unsubscribe func()) {
	l := &listener{fn: fn}
	c.listenersMu.Lock()
	c.listeners = append(c.listeners, l)
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		for i, candidate := range c.listeners {
			if candidate == l {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of registered change listeners
func (c *Composer) Listeners() int {
	c.listenersMu.RLock()
	defer c.listenersMu.RUnlock()
	return len(c.listeners)
}

// SetOwner changes the participant added to meetings committed from now on
func (c *Composer) SetOwner(owner string) {
	if owner == "" {
		owner = "You"
	}
	c.mu.Lock()
	c.owner = owner
	c.mu.Unlock()
}

// SetSpeaker replaces the confirmation speaker. Nil disables confirmations.
func (c *Composer) SetSpeaker(s Speaker) {
	c.mu.Lock()
	c.speaker = s
	c.mu.Unlock()
}

// Draft returns the current draft
func (c *Composer) Draft() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// State returns the draft together with the busy flags
func (c *Composer) State() State {
	return State{
		Draft:      c.Draft(),
		Processing: c.Processing(),
		Listening:  c.Listening(),
	}
}

// Processing reports whether a parse request is in flight
func (c *Composer) Processing() bool {
	return c.processing.Load()
}

// Listening reports whether a voice capture is in progress
func (c *Composer) Listening() bool {
	return c.listening.Load()
}

// VoiceAvailable reports whether SubmitVoice can do anything
func (c *Composer) VoiceAvailable() bool {
	return c.voice != nil && c.voice.Available()
}

// ApplyManualEdit sets a single field of the draft
func (c *Composer) ApplyManualEdit(field Field, value string) error {
	c.mu.Lock()
	next, err := field.set(c.draft, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.draft = next
	c.mu.Unlock()

	c.notify()
	return nil
}

// ApplyParsedResult merges the known fields of a parse result into the draft.
// Fields the parser left empty keep their current value.
func (c *Composer) ApplyParsedResult(parsed models.ParsedDraft) {
	if parsed.IsEmpty() {
		return
	}
	c.mu.Lock()
	c.draft = parsed.MergeInto(c.draft)
	c.mu.Unlock()

	c.notify()
}

// Reset discards the draft
func (c *Composer) Reset() {
	c.mu.Lock()
	c.draft = models.NewDraft()
	c.mu.Unlock()

	c.notify()
}

// CanCommit reports whether title, date and start time are all filled in
func (c *Composer) CanCommit() bool {
	return canCommit(c.Draft())
}

func canCommit(d models.Draft) bool {
	return strings.TrimSpace(d.Title) != "" && d.HasSchedule()
}

// Commit turns the draft into a meeting, adds it to the store and resets
// the draft. It returns false and leaves everything untouched when the
// draft is incomplete or does not describe a valid meeting.
func (c *Composer) Commit() (models.Meeting, bool) {
	c.mu.Lock()
	d := c.draft
	if !canCommit(d) {
		c.mu.Unlock()
		return models.Meeting{}, false
	}

	meeting, err := c.build(d)
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("draft rejected", zap.Error(err))
		return models.Meeting{}, false
	}
	c.draft = models.NewDraft()
	c.mu.Unlock()

	c.store.Add(meeting)
	c.logger.Info("meeting scheduled",
		zap.String("id", meeting.ID),
		zap.String("title", meeting.Title),
		zap.Time("start", meeting.StartTime))

	c.notify()
	return meeting, true
}

func (c *Composer) build(d models.Draft) (models.Meeting, error) {
	start, err := c.startOf(d)
	if err != nil {
		return models.Meeting{}, err
	}

	platform := models.PlatformOrOther(d.Platform)
	link := models.NormalizeLink(d.Link)
	if link == "" {
		link = platform.DefaultLink()
	}

	meeting := models.Meeting{
		ID:           c.ids.NewID(),
		Title:        strings.TrimSpace(d.Title),
		StartTime:    start,
		EndTime:      start.Add(c.duration),
		Platform:     platform,
		Link:         link,
		Participants: []string{c.owner},
		Source:       models.SourceCalendar,
		Description:  d.Description,
	}
	if err := models.Validate(meeting); err != nil {
		return models.Meeting{}, fmt.Errorf("invalid meeting: %w", err)
	}
	return meeting, nil
}

// startOf resolves date and start time in the composer's location, as UTC
func (c *Composer) startOf(d models.Draft) (time.Time, error) {
	value := strings.TrimSpace(d.Date) + " " + strings.TrimSpace(d.StartTime)
	start, err := time.ParseInLocation(models.DateLayout+" "+models.TimeLayout, value, c.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start %q: %w", value, err)
	}
	return start.UTC(), nil
}

// Conflict returns the first stored meeting overlapping the draft's time
// slot, or nil. It is advisory and never blocks Commit.
func (c *Composer) Conflict() *models.Meeting {
	d := c.Draft()
	if !d.HasSchedule() {
		return nil
	}
	start, err := c.startOf(d)
	if err != nil {
		return nil
	}
	return conflict.FindAt(start, c.duration, c.store.List())
}

// SubmitText sends free text to the parser and merges the result. Only one
// request may be in flight; a concurrent submission gets ErrBusy. On failure
// the draft is left unchanged.
func (c *Composer) SubmitText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}
	if c.parser == nil {
		return ErrNoParser
	}
	if !c.processing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	c.notify()
	defer func() {
		c.processing.Store(false)
		c.notify()
	}()

	parsed, err := c.parser.Parse(ctx, text, c.clock.Now().In(c.location))
	if err != nil {
		c.logger.Warn("parse failed", zap.String("text", text), zap.Error(err))
		return err
	}

	c.logger.Debug("parsed draft", zap.Any("result", parsed))
	c.ApplyParsedResult(parsed)

	if parsed.Title != "" {
		c.confirm(ctx, parsed.Title)
	}
	return nil
}

// confirm speaks in the background; errors are only logged
func (c *Composer) confirm(ctx context.Context, title string) {
	c.mu.Lock()
	speaker := c.speaker
	c.mu.Unlock()
	if speaker == nil {
		return
	}
	text := fmt.Sprintf("I've drafted %s for you.", title)

	c.speaking.Add(1)
	go func() {
		defer c.speaking.Done()
		if err := speaker.Speak(context.WithoutCancel(ctx), text); err != nil {
			c.logger.Warn("spoken confirmation failed", zap.Error(err))
		}
	}()
}

// SubmitVoice captures one transcript and submits it as text. It does
// nothing when voice capture is unavailable.
func (c *Composer) SubmitVoice(ctx context.Context) error {
	if !c.VoiceAvailable() {
		c.logger.Debug("voice capture unavailable")
		return nil
	}
	if c.Processing() {
		return ErrBusy
	}
	if !c.listening.CompareAndSwap(false, true) {
		return ErrBusy
	}
	c.notify()

	transcript, err := c.voice.Capture(ctx)
	c.listening.Store(false)
	c.notify()
	if err != nil {
		c.logger.Warn("voice capture failed", zap.Error(err))
		return err
	}

	c.logger.Debug("voice transcript", zap.String("text", transcript))
	return c.SubmitText(ctx, transcript)
}

// Wait blocks until every background confirmation has finished
func (c *Composer) Wait() {
	c.speaking.Wait()
}

func (c *Composer) notify() {
	c.listenersMu.RLock()
	listeners := make([]*listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.listenersMu.RUnlock()

	if len(listeners) == 0 {
		return
	}
	state := c.State()
	for _, l := range listeners {
		l.fn(state)
	}
}

package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/a-la-firme/librarysystem/pkg/broadcast"
)

// Level is the visual severity of an alert.
type Level string

const (
	LevelSuccess Level = "success"
	LevelDanger  Level = "danger"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Alert is a single transient page notification.
type Alert struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Presenter is the page surface alerts are rendered on. Alerts stack;
// removal is by id except for the legacy dismiss mode, which always removes
// the most recently appended alert.
type Presenter interface {
	Append(Alert)
	Remove(id string)
	RemoveLast()
}

// DefaultTTL is how long an alert stays on screen before auto-dismissal.
const DefaultTTL = 5 * time.Second

// Emitter shows transient alerts on a Presenter and auto-dismisses them
// after a TTL. Every alert is also broadcast, so transports (SSE, logs,
// tests) can mirror the toast stream.
type Emitter struct {
	presenter Presenter
	hub       *broadcast.MemoryBroadcaster[Alert]
	ttl       time.Duration
	now       func() time.Time
	schedule  func(time.Duration, func()) func()
	legacy    bool
	log       *slog.Logger

	mu      sync.Mutex
	cancels map[string]func()
	closed  bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithTTL overrides the auto-dismiss delay.
func WithTTL(d time.Duration) Option {
	return func(e *Emitter) {
		if d > 0 {
			e.ttl = d
		}
	}
}

// WithLogger sets the logger for the Emitter.
func WithLogger(log *slog.Logger) Option {
	return func(e *Emitter) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithScheduler replaces the dismiss scheduler, for tests. The function must
// run fn after d and return a cancel func.
func WithScheduler(schedule func(d time.Duration, fn func()) func()) Option {
	return func(e *Emitter) {
		if schedule != nil {
			e.schedule = schedule
		}
	}
}

// WithLegacyDismiss restores the historical dismiss behavior where the timer
// always removes the most recently appended alert instead of its own. With
// overlapping alerts this can dismiss the wrong one; it exists only for
// faithful ports of the old page.
func WithLegacyDismiss() Option {
	return func(e *Emitter) {
		e.legacy = true
	}
}

// New creates an alert emitter on top of the given presenter.
func New(presenter Presenter, opts ...Option) *Emitter {
	e := &Emitter{
		presenter: presenter,
		hub:       broadcast.NewMemoryBroadcaster[Alert](16),
		ttl:       DefaultTTL,
		now:       time.Now,
		log:       slog.Default(),
		cancels:   make(map[string]func()),
	}
	e.schedule = func(d time.Duration, fn func()) func() {
		t := time.AfterFunc(d, fn)
		return func() { t.Stop() }
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Show appends an alert and schedules its dismissal after the TTL.
func (e *Emitter) Show(level Level, message string) Alert {
	alert := Alert{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: e.now(),
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return alert
	}
	e.presenter.Append(alert)
	e.cancels[alert.ID] = e.schedule(e.ttl, func() {
		e.dismiss(alert.ID)
	})
	e.mu.Unlock()

	// Best effort: subscribers mirror the stream, the page surface is
	// already updated either way.
	if err := e.hub.Broadcast(context.Background(), broadcast.Message[Alert]{Data: alert}); err != nil {
		e.log.Warn("failed to broadcast alert", "alert_id", alert.ID, "error", err)
	}

	return alert
}

func (e *Emitter) Success(message string) Alert { return e.Show(LevelSuccess, message) }
func (e *Emitter) Danger(message string) Alert  { return e.Show(LevelDanger, message) }
func (e *Emitter) Warning(message string) Alert { return e.Show(LevelWarning, message) }
func (e *Emitter) Info(message string) Alert    { return e.Show(LevelInfo, message) }

// Subscribe returns a subscriber receiving every shown alert.
// The subscription ends when ctx is cancelled.
func (e *Emitter) Subscribe(ctx context.Context) broadcast.Subscriber[Alert] {
	return e.hub.Subscribe(ctx)
}

func (e *Emitter) dismiss(id string) {
	e.mu.Lock()
	delete(e.cancels, id)
	closed := e.closed
	e.mu.Unlock()

	if closed {
		return
	}

	if e.legacy {
		e.presenter.RemoveLast()
		return
	}
	e.presenter.Remove(id)
}

// Close cancels pending dismiss timers and shuts down the broadcast hub.
func (e *Emitter) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	for _, cancel := range e.cancels {
		cancel()
	}
	clear(e.cancels)
	e.mu.Unlock()

	return e.hub.Close()
}

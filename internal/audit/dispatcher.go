package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	ActionAttendanceMarked  = "attendance_marked"
	ActionTimeOffCreated    = "time_off_created"
	ActionTimeOffRemoved    = "time_off_removed"
	ActionScheduleSaved     = "schedule_saved"
	ActionBarbershopUpdated = "barbershop_updated"
	ActionLogoUpdated       = "logo_updated"
	ActionBarberCreated     = "barber_created"
	ActionBarberUpdated     = "barber_updated"
	ActionPasswordReset     = "password_reset"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Recorder is what use cases depend on.
type Recorder interface {
	Dispatch(ev Event)
}

type store interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	store   store
	queue   chan Event
	done    chan struct{}
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	onDrop  func()
	timeout time.Duration
}

type Option func(*Dispatcher)

// WithDropHook is called for every event discarded because the queue is full.
func WithDropHook(fn func()) Option {
	return func(d *Dispatcher) { d.onDrop = fn }
}

func WithQueueSize(n int) Option {
	return func(d *Dispatcher) { d.queue = make(chan Event, n) }
}

func NewDispatcher(logger *Logger, opts ...Option) *Dispatcher {
	return newDispatcher(logger, opts...)
}

func newDispatcher(s store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:   s,
		queue:   make(chan Event, 100),
		done:    make(chan struct{}),
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.store.Log(ctx, ev); err != nil {
			slog.Error("audit write failed",
				"action", ev.Action,
				"barbershop_id", ev.BarbershopID,
				"error", err,
			)
		}
		cancel()
	}
}

// Dispatch never blocks: when the queue is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		slog.Warn("audit queue full, dropping event", "action", ev.Action)
		if d.onDrop != nil {
			d.onDrop()
		}
	}
}

// Close stops accepting events and waits until the queue is drained or ctx
// is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

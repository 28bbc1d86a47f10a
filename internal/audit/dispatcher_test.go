package audit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (s *memStore) Log(_ context.Context, ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *memStore) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Action
	}
	return out
}

func TestDispatcherCloseDrainsQueue(t *testing.T) {
	s := &memStore{}
	d := newDispatcher(s)

	d.Dispatch(Event{Action: ActionAttendanceMarked})
	d.Dispatch(Event{Action: ActionTimeOffCreated})
	d.Dispatch(Event{Action: ActionScheduleSaved})

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, []string{ActionAttendanceMarked, ActionTimeOffCreated, ActionScheduleSaved}, s.actions())

	// dispatching after close is a no-op
	d.Dispatch(Event{Action: ActionLogoUpdated})
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, s.actions(), 3)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	s := &memStore{block: make(chan struct{})}
	var dropped atomic.Int32

	d := newDispatcher(s, WithQueueSize(1), WithDropHook(func() { dropped.Add(1) }))

	// first event is taken by the worker, which blocks on the store
	d.Dispatch(Event{Action: "a"})
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, 5*time.Millisecond)

	d.Dispatch(Event{Action: "b"})
	d.Dispatch(Event{Action: "c"})
	assert.Equal(t, int32(1), dropped.Load())

	close(s.block)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, []string{"a", "b"}, s.actions())
}

func TestDispatcherStoreErrorsDoNotStopWorker(t *testing.T) {
	s := &memStore{err: errors.New("db down")}
	d := newDispatcher(s)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, s.actions(), 2)
}

func TestDispatcherCloseHonoursContext(t *testing.T) {
	s := &memStore{block: make(chan struct{})}
	d := newDispatcher(s)
	d.Dispatch(Event{Action: "a"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
	close(s.block)
}

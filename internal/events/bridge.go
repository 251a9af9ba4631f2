package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Callback receives events from a Bridge.
//
// Registering a Callback asserts that Invoke may be called from a goroutine
// other than the one that registered it. The bridge relies on this and cannot
// check it. Invoke is never entered concurrently with itself, and must not
// call Close on its own bridge synchronously.
type Callback[T any] interface {
	Invoke(event T)
}

// CallbackFunc adapts a function to Callback.
type CallbackFunc[T any] func(event T)

// Invoke calls f(event).
func (f CallbackFunc[T]) Invoke(event T) { f(event) }

// State is the lifecycle position of a Bridge.
type State int

const (
	Uninitialized State = iota
	Registered
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Registered:
		return "registered"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Bridge is a single-consumer ordered delivery channel.
type Bridge[T any] struct {
	name string
	log  zerolog.Logger

	mu       sync.Mutex
	callback Callback[T]
	queue    []T
	state    State

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewBridge returns an uninitialized bridge. log reports callback panics and
// must not itself publish into this bridge.
func NewBridge[T any](name string, log zerolog.Logger) *Bridge[T] {
	return &Bridge[T]{
		name: name,
		log:  log.With().Str("bridge", name).Logger(),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Register installs cb, replacing any previous callback, and starts the
// worker on first use. Events already queued go to the new callback.
func (b *Bridge[T]) Register(cb Callback[T]) {
	if cb == nil {
		b.log.Warn().Msg("ignoring nil callback")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.log.Warn().Msg("register after close ignored")
		return
	case Uninitialized:
		b.state = Registered
		go b.run()
	}
	b.callback = cb
}

// Publish enqueues event. It is dropped when no callback was ever registered
// or the bridge is closed.
func (b *Bridge[T]) Publish(event T) {
	b.mu.Lock()
	if b.state != Registered {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, event)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// State reports where the bridge is in its lifecycle.
func (b *Bridge[T]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Pending returns the number of queued, undelivered events.
func (b *Bridge[T]) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Close stops accepting events, waits for the worker to deliver everything
// already queued and returns. It is safe to call more than once.
//
// Close must not be called from inside Invoke: the worker would wait on
// itself. A callback that wants to stop the bridge calls it from a new
// goroutine (go b.Close()); the close then completes after the events
// already queued.
func (b *Bridge[T]) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		started := b.state == Registered
		b.state = Closed
		b.mu.Unlock()

		if !started {
			close(b.done)
			return
		}
		select {
		case b.wake <- struct{}{}:
		default:
		}
	})
	<-b.done
}

func (b *Bridge[T]) run() {
	defer close(b.done)
	for {
		b.mu.Lock()
		for len(b.queue) == 0 {
			if b.state == Closed {
				b.mu.Unlock()
				return
			}
			b.mu.Unlock()
			<-b.wake
			b.mu.Lock()
		}
		event := b.queue[0]
		var zero T
		b.queue[0] = zero
		b.queue = b.queue[1:]
		cb := b.callback
		b.mu.Unlock()

		b.deliver(cb, event)
	}
}

func (b *Bridge[T]) deliver(cb Callback[T], event T) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Msg("callback panicked, continuing with next event")
		}
	}()
	cb.Invoke(event)
}

package frame

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultInterval is the default frame interval (about 60 frames per second).
const DefaultInterval = 16 * time.Millisecond

// ErrLoopStopped is returned by Do when the loop is no longer running.
var ErrLoopStopped = errors.New("frame: loop stopped")

// Scheduler runs callbacks on the next frame.
type Scheduler interface {
	// RequestFrame queues fn to run once on the next frame. Callbacks
	// requested while a frame is running run on the following frame.
	RequestFrame(fn func())
}

// Loop is a single-goroutine event loop. Tasks posted with Post and frame
// callbacks requested with RequestFrame all run on the goroutine that calls
// Run, so state touched only from the loop needs no locking.
type Loop struct {
	interval time.Duration

	tasks chan func()

	mu     sync.Mutex
	frames []func()
	wake   chan struct{}

	// done is closed when Run returns.
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop that fires requested frames at most once per
// interval. A zero interval uses DefaultInterval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		interval: interval,
		tasks:    make(chan func(), 256),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine. It is safe to call from any
// goroutine. Tasks posted after the loop stopped are dropped, including a
// post that is blocked on a full queue when Run returns.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// RequestFrame implements Scheduler. It is safe to call from any goroutine.
func (l *Loop) RequestFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	finished := make(chan struct{})
	select {
	case l.tasks <- func() { defer close(finished); fn() }:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks and frames until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.stopOnce.Do(func() { close(l.done) })

	pending := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case <-l.wake:
			pending = true
		case <-ticker.C:
			if pending {
				pending = l.runFrame()
			}
		}
	}
}

// runFrame runs the callbacks queued so far. It reports whether more frames
// were requested while it ran.
func (l *Loop) runFrame() bool {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, fn := range frames {
		fn()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames) > 0
}

// Manual is a Scheduler whose frames only fire when Flush is called.
type Manual struct {
	frames []func()
	count  int
}

// NewManual creates a manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame implements Scheduler.
func (m *Manual) RequestFrame(fn func()) {
	m.frames = append(m.frames, fn)
}

// Pending returns the number of callbacks waiting for the next frame.
func (m *Manual) Pending() int {
	return len(m.frames)
}

// Frames returns how many non-empty frames have been flushed.
func (m *Manual) Frames() int {
	return m.count
}

// Flush runs one frame: every callback requested before the call.
// Callbacks requested during the frame wait for the next Flush.
func (m *Manual) Flush() {
	frames := m.frames
	m.frames = nil
	if len(frames) == 0 {
		return
	}
	m.count++
	for _, fn := range frames {
		fn()
	}
}

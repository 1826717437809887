package delog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

// Logger defers log output: records are rendered into a ring buffer at the call site
// and only written out by Flush. The ring and render buffers are allocated once by
// Build; Log and TryLog never block or panic.
//
// Log and TryLog may be called from nested, interrupt-like contexts (see Store for the
// exact precondition). Flush is meant for one consumer at a time; overlapping calls
// return without draining.
type Logger struct {
	store     *Store
	renderer  Renderer
	flusher   Flusher
	immediate Flusher
	maxLevel  Level
	clock     xclock.Clock
	caller    bool
	interval  time.Duration

	scratch  renderStack
	drainBuf []byte
	draining atomic.Bool

	st stats
}

func newLogger(o Options) *Logger {
	l := &Logger{
		store:     NewStore(o.Capacity),
		renderer:  o.Renderer,
		flusher:   o.Flusher,
		immediate: o.Immediate,
		maxLevel:  o.MaxLevel,
		clock:     o.Clock,
		caller:    o.Caller,
		interval:  o.FlushInterval,
		drainBuf:  make([]byte, o.Capacity),
	}
	l.scratch.init(o.NestingDepth, o.RenderCapacity)
	return l
}

// disabledLogger backs L() before Init and under the delog_off build tag.
var disabledLogger = &Logger{maxLevel: LevelOff}

// Enabled reports whether records at level would be emitted by this logger.
// Use to avoid building fields in hot paths when disabled.
func (l *Logger) Enabled(level Level) bool {
	if Disabled {
		return false
	}
	return l.maxLevel < LevelOff && level >= l.maxLevel
}

// Level entry points returning fluent builders. They return nil when the level is
// disabled; every Event method accepts a nil receiver.

func (l *Logger) Trace() *Event { return l.event(LevelTrace) }
func (l *Logger) Debug() *Event { return l.event(LevelDebug) }
func (l *Logger) Info() *Event  { return l.event(LevelInfo) }
func (l *Logger) Warn() *Event  { return l.event(LevelWarn) }
func (l *Logger) Error() *Event { return l.event(LevelError) }

// Log is the best-effort entry point: a record that does not fit is dropped and only
// shows up in Statistics.
func (l *Logger) Log(r *Record) { _ = l.TryLog(r) }

// TryLog renders r and appends it to the ring buffer, or hands it to the immediate
// Flusher when r targets ImmediateTarget. It returns ErrAtCapacity when the buffer has
// no room and ErrNestingTooDeep when every render buffer is in use. Records below the
// level gate return nil without being rendered or counted.
//
// A zero r.At is filled in from the logger's clock.
func (l *Logger) TryLog(r *Record) error {
	if !l.Enabled(r.Level) {
		return nil
	}
	l.st.attempts.Add(1)

	buf, ok := l.scratch.acquire()
	if !ok {
		return ErrNestingTooDeep
	}
	defer l.scratch.release()

	if r.At.IsZero() {
		r.At = l.now()
	}
	entry := l.renderer.Render(buf, r)

	if r.Immediate() {
		l.immediate.Flush(unsafeString(entry))
		l.st.successes.Add(1)
		return nil
	}
	if err := Enqueue(l.store, entry); err != nil {
		return err
	}
	l.st.successes.Add(1)
	return nil
}

// Flush drains everything published so far and passes it to the Flusher, unless it
// is empty. Every call counts, drained or not.
func (l *Logger) Flush() {
	if Disabled || l.store == nil {
		return
	}
	l.st.flushes.Add(1)
	if !l.draining.CompareAndSwap(false, true) {
		return
	}
	defer l.draining.Store(false)

	logs := Drain(l.store, l.drainBuf)
	if len(logs) > 0 {
		l.flusher.Flush(unsafeString(logs))
	}
}

// Statistics returns a snapshot of the logger's counters. Each field is read atomically.
func (l *Logger) Statistics() Statistics {
	if Disabled || l.store == nil {
		return Statistics{}
	}
	s := l.st.snapshot()
	c := l.store.Cursors()
	s.Read, s.Written = c.Read, c.Written
	return s
}

// Capacity returns the ring buffer size in bytes.
func (l *Logger) Capacity() int {
	if l.store == nil {
		return 0
	}
	return l.store.Capacity()
}

// FlushInterval returns the period Run falls back to.
func (l *Logger) FlushInterval() time.Duration {
	if l.interval <= 0 {
		return DefaultFlushInterval
	}
	return l.interval
}

// Run flushes every interval until ctx is done, then flushes once more and returns
// ctx.Err(). A non-positive interval means FlushInterval(). Run is the idle-loop
// consumer for processes without a natural flush point.
func (l *Logger) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = l.FlushInterval()
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			l.Flush()
		case <-ctx.Done():
			l.Flush()
			return ctx.Err()
		}
	}
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

// renderStack hands out one render buffer per nesting level, so a call that
// preempts another never renders over bytes the preempted call has not copied yet.
type renderStack struct {
	bufs  [][]byte
	depth atomic.Int32
}

func (s *renderStack) init(depth, size int) {
	s.bufs = make([][]byte, depth)
	for i := range s.bufs {
		s.bufs[i] = make([]byte, size)
	}
}

func (s *renderStack) acquire() ([]byte, bool) {
	d := int(s.depth.Add(1)) - 1
	if d >= len(s.bufs) {
		s.depth.Add(-1)
		return nil, false
	}
	return s.bufs[d], true
}

func (s *renderStack) release() { s.depth.Add(-1) }

package delog

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"unsafe"
)

// Flusher is the output sink (Strategy) for drained log text.
//
// logs is borrowed: it aliases a buffer the Logger reuses, so it is valid only until
// Flush returns. Implementations that keep it must copy it. Flush must not panic, must
// not log through the Logger that called it, and should not block when the Logger is
// flushed from interrupt-like contexts.
type Flusher interface {
	Flush(logs string)
}

// FlusherFunc adapts a function to the Flusher interface.
type FlusherFunc func(logs string)

func (f FlusherFunc) Flush(logs string) { f(logs) }

// WriterFlusher writes drained text to an io.Writer. Write errors are counted, not returned.
type WriterFlusher struct {
	w      io.Writer
	errors atomic.Uint64
}

func NewWriterFlusher(w io.Writer) *WriterFlusher {
	if w == nil {
		w = os.Stdout
	}
	return &WriterFlusher{w: w}
}

// Stdout returns a Flusher printing to os.Stdout.
func Stdout() *WriterFlusher { return NewWriterFlusher(os.Stdout) }

// Stderr returns a Flusher printing to os.Stderr.
func Stderr() *WriterFlusher { return NewWriterFlusher(os.Stderr) }

func (f *WriterFlusher) Flush(logs string) {
	if _, err := io.WriteString(f.w, logs); err != nil {
		f.errors.Add(1)
	}
}

// Errors returns how many writes failed.
func (f *WriterFlusher) Errors() uint64 { return f.errors.Load() }

// ChanFlusher hands a private copy of every flush to a consumer goroutine, so the
// logging side never waits for slow output. When the queue is full the text is dropped
// and counted.
type ChanFlusher struct {
	ch      chan string
	dropped atomic.Uint64
}

func NewChanFlusher(queue int) *ChanFlusher {
	if queue <= 0 {
		queue = 16
	}
	return &ChanFlusher{ch: make(chan string, queue)}
}

func (f *ChanFlusher) Flush(logs string) {
	select {
	case f.ch <- strings.Clone(logs):
	default:
		f.dropped.Add(1)
	}
}

// C exposes the queue for callers running their own consumer.
func (f *ChanFlusher) C() <-chan string { return f.ch }

// Dropped returns how many flushes were discarded because the queue was full.
func (f *ChanFlusher) Dropped() uint64 { return f.dropped.Load() }

// Serve forwards queued text to dst until ctx is done, then forwards whatever is
// still queued and returns ctx.Err().
func (f *ChanFlusher) Serve(ctx context.Context, dst Flusher) error {
	for {
		select {
		case logs := <-f.ch:
			dst.Flush(logs)
		case <-ctx.Done():
			for {
				select {
				case logs := <-f.ch:
					dst.Flush(logs)
				default:
					return ctx.Err()
				}
			}
		}
	}
}

// EachLine calls fn for every non-empty line in logs, without the trailing newline.
// Backends that emit one structured entry per line build on it.
func EachLine(logs string, fn func(line string)) {
	for len(logs) > 0 {
		i := strings.IndexByte(logs, '\n')
		if i < 0 {
			fn(logs)
			return
		}
		if i > 0 {
			fn(logs[:i])
		}
		logs = logs[i+1:]
	}
}

// LineLevel recovers the level from a line produced by PrefixedRenderer, with or
// without a leading timestamp. It returns fallback for lines without a level prefix.
//
// The result is only meaningful for PrefixedRenderer output: a MinimalRenderer line
// whose message happens to start with "ERROR|" reads as ERROR. Check the renderer
// with WritesLevelPrefix before relying on it.
func LineLevel(line string, fallback Level) Level {
	for range 2 {
		i := strings.IndexByte(line, '|')
		if i < 0 {
			return fallback
		}
		switch line[:i] {
		case "TRACE":
			return LevelTrace
		case "DEBUG":
			return LevelDebug
		case "INFO":
			return LevelInfo
		case "WARN":
			return LevelWarn
		case "ERROR":
			return LevelError
		case "FATAL":
			return LevelFatal
		}
		line = line[i+1:]
	}
	return fallback
}

// WritesLevelPrefix reports whether lines rendered by r carry the level prefix that
// LineLevel reads.
func WritesLevelPrefix(r Renderer) bool {
	switch r.(type) {
	case PrefixedRenderer, *PrefixedRenderer:
		return true
	}
	return false
}

// unsafeString views b as a string without copying. The result is only valid while b
// is neither modified nor reused.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

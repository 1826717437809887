package delog

import (
	"runtime"
	"sync"
	"time"
)

// Event is a fluent builder (Builder pattern) for a single record.
// API: L().Info().Target("net").Str("peer", addr).Int("n", n).Msg("connected")
//
// A nil *Event is valid and does nothing; disabled levels hand one out so the
// arguments are never rendered.
type Event struct {
	l      *Logger
	r      Record
	caller bool
}

var eventPool = sync.Pool{
	New: func() any { return &Event{r: Record{Fields: make([]Field, 0, 8)}} },
}

func (l *Logger) event(level Level) *Event {
	if !l.Enabled(level) {
		return nil
	}
	ev := eventPool.Get().(*Event)
	ev.l = l
	ev.caller = l.caller
	ev.r.Level = level
	return ev
}

func (e *Event) putBack() {
	fields := e.r.Fields[:0]
	// allow GC of large backing arrays by capping
	if cap(fields) > 128 {
		fields = make([]Field, 0, 8)
	}
	clear(e.r.Fields)
	e.r = Record{Fields: fields}
	e.l = nil
	eventPool.Put(e)
}

// Target sets the record's target; the default is empty.
func (e *Event) Target(t string) *Event {
	if e != nil {
		e.r.Target = t
	}
	return e
}

// Now routes the record past the ring buffer, straight to the immediate Flusher.
func (e *Event) Now() *Event { return e.Target(ImmediateTarget) }

// Caller records the call site's file:line even when the logger does not do so
// for every record.
func (e *Event) Caller() *Event {
	if e != nil {
		e.caller = true
	}
	return e
}

// At overrides the record timestamp, which otherwise comes from the logger's clock.
func (e *Event) At(t time.Time) *Event {
	if e != nil {
		e.r.At = t
	}
	return e
}

// Field builders (zerolog-style)

func (e *Event) Str(k, v string) *Event { return e.add(Str(k, v)) }

func (e *Event) Int(k string, v int) *Event { return e.add(Int64(k, int64(v))) }

func (e *Event) Int64(k string, v int64) *Event { return e.add(Int64(k, v)) }

func (e *Event) Uint64(k string, v uint64) *Event { return e.add(Uint64(k, v)) }

func (e *Event) Float64(k string, v float64) *Event { return e.add(Float64(k, v)) }

func (e *Event) Bool(k string, v bool) *Event { return e.add(Bool(k, v)) }

func (e *Event) Dur(k string, v time.Duration) *Event { return e.add(Dur(k, v)) }

func (e *Event) Time(k string, v time.Time) *Event { return e.add(Time(k, v)) }

func (e *Event) Bytes(k string, v []byte) *Event { return e.add(Bytes(k, v)) }

func (e *Event) Err(err error) *Event {
	if err == nil {
		return e
	}
	return e.add(Err("error", err))
}

func (e *Event) Any(k string, v any) *Event { return e.add(Any(k, v)) }

// Fields appends pre-built fields.
func (e *Event) Fields(fs ...Field) *Event {
	if e != nil {
		e.r.Fields = append(e.r.Fields, fs...)
	}
	return e
}

func (e *Event) add(f Field) *Event {
	if e != nil {
		e.r.Fields = append(e.r.Fields, f)
	}
	return e
}

// Msg terminates the builder and logs the record, dropping it if the buffer is full.
func (e *Event) Msg(msg string) { _ = e.finish(msg, nil) }

// Msgf is Msg with a format string. Formatting happens only once the level gate passed.
func (e *Event) Msgf(format string, args ...any) { _ = e.finish(format, args) }

// TryMsg is Msg, but reports ErrAtCapacity and ErrNestingTooDeep to the caller.
func (e *Event) TryMsg(msg string) error { return e.finish(msg, nil) }

// TryMsgf is the fallible form of Msgf.
func (e *Event) TryMsgf(format string, args ...any) error { return e.finish(format, args) }

func (e *Event) finish(format string, args []any) error {
	if e == nil {
		return nil
	}
	e.r.Format = format
	e.r.Args = args
	if e.caller {
		// skip finish and the Msg variant that called it
		if _, file, line, ok := runtime.Caller(2); ok {
			e.r.File, e.r.Line = file, line
		}
	}
	err := e.l.TryLog(&e.r)
	e.putBack()
	return err
}

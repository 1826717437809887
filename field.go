package delog

import (
	"math"
	"time"
)

type fieldKind uint8

const (
	kindString fieldKind = iota + 1
	kindInt
	kindUint
	kindFloat
	kindBool
	kindDuration
	kindTime
	kindError
	kindBytes
	kindAny
)

// Field is a key/value pair rendered after the message as " key=value". It is built
// only through the constructors below and is rendered only if its record passes the
// level gate.
//
// Numbers, booleans and durations share one 64-bit slot. Bytes keep only their length,
// so a Field never retains the caller's slice.
type Field struct {
	Key  string
	kind fieldKind
	str  string
	num  uint64
	t    time.Time
	ref  any
}

func Str(k, v string) Field           { return Field{Key: k, kind: kindString, str: v} }
func Int64(k string, v int64) Field   { return Field{Key: k, kind: kindInt, num: uint64(v)} }
func Uint64(k string, v uint64) Field { return Field{Key: k, kind: kindUint, num: v} }

func Float64(k string, v float64) Field {
	return Field{Key: k, kind: kindFloat, num: math.Float64bits(v)}
}

func Bool(k string, v bool) Field {
	f := Field{Key: k, kind: kindBool}
	if v {
		f.num = 1
	}
	return f
}

func Dur(k string, v time.Duration) Field {
	return Field{Key: k, kind: kindDuration, num: uint64(v)}
}

func Time(k string, v time.Time) Field { return Field{Key: k, kind: kindTime, t: v} }

// Err renders e.Error() quoted, or null for a nil error.
func Err(k string, e error) Field { return Field{Key: k, kind: kindError, ref: e} }

// Bytes renders as len:N; the content is never logged.
func Bytes(k string, b []byte) Field {
	return Field{Key: k, kind: kindBytes, num: uint64(len(b))}
}

func Any(k string, v any) Field { return Field{Key: k, kind: kindAny, ref: v} }

package delog

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// Renderer turns a Record into bytes inside dst and returns the part of dst it used.
// It must not allocate dst, retain it, block, or log.
type Renderer interface {
	Render(dst []byte, r *Record) []byte
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(dst []byte, r *Record) []byte

func (f RendererFunc) Render(dst []byte, r *Record) []byte { return f(dst, r) }

// MinimalRenderer writes only the message and its fields, then a newline.
type MinimalRenderer struct{}

func (MinimalRenderer) Render(dst []byte, r *Record) []byte {
	w := NewLineWriter(dst)
	r.WriteMessage(&w)
	return w.Line()
}

// PrefixedRenderer writes LEVEL|target|file:line: message, dropping the file and line
// parts that are unknown. With Timestamps set, the record time leads the line.
type PrefixedRenderer struct {
	Timestamps bool
	TimeFormat string // defaults to time.RFC3339Nano
}

func (p PrefixedRenderer) Render(dst []byte, r *Record) []byte {
	w := NewLineWriter(dst)
	if p.Timestamps {
		layout := p.TimeFormat
		if layout == "" {
			layout = time.RFC3339Nano
		}
		var tmp [64]byte
		w.Write(r.At.AppendFormat(tmp[:0], layout))
		w.WriteByte('|')
	}
	w.WriteString(r.Level.String())
	w.WriteByte('|')
	w.WriteString(r.Target)
	if r.File != "" {
		w.WriteByte('|')
		w.WriteString(r.File)
		if r.Line > 0 {
			var tmp [20]byte
			w.WriteByte(':')
			w.Write(strconv.AppendInt(tmp[:0], int64(r.Line), 10))
		}
	}
	w.WriteString(": ")
	r.WriteMessage(&w)
	return w.Line()
}

// LineWriter is the low-level write primitive renderers use. It fills a fixed slice and
// never grows it, holding back the last byte for the newline Line appends. A write that
// does not fit stores what fits, cut at a UTF-8 boundary, returns ErrTruncated, and turns
// every later write into a no-op.
type LineWriter struct {
	buf  []byte
	n    int
	full bool
}

func NewLineWriter(buf []byte) LineWriter { return LineWriter{buf: buf} }

func (w *LineWriter) Write(p []byte) (int, error) { return writeClamped(w, p) }

func (w *LineWriter) WriteString(s string) (int, error) { return writeClamped(w, s) }

func (w *LineWriter) WriteByte(c byte) error {
	if w.full || w.n+1 >= len(w.buf) {
		w.full = true
		return ErrTruncated
	}
	w.buf[w.n] = c
	w.n++
	return nil
}

// Truncated reports whether any write was cut short.
func (w *LineWriter) Truncated() bool { return w.full }

// Len returns the number of bytes written, excluding the newline.
func (w *LineWriter) Len() int { return w.n }

// Line terminates the entry with '\n' and returns it. With a zero-length buffer the
// result is empty.
func (w *LineWriter) Line() []byte {
	if len(w.buf) == 0 {
		return w.buf
	}
	w.buf[w.n] = '\n'
	return w.buf[:w.n+1]
}

func writeClamped[T string | []byte](w *LineWriter, p T) (int, error) {
	if w.full {
		return 0, ErrTruncated
	}
	room := len(w.buf) - 1 - w.n
	if len(p) <= room {
		w.n += copy(w.buf[w.n:], p)
		return len(p), nil
	}
	cut := max(room, 0)
	for cut > 0 && !utf8.RuneStart(p[cut]) {
		cut--
	}
	w.n += copy(w.buf[w.n:w.n+cut], p)
	w.full = true
	return cut, ErrTruncated
}

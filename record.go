package delog

import (
	"fmt"
	"time"
)

// ImmediateTarget marks a record as urgent: it is rendered and handed to the immediate
// Flusher during the log call itself, bypassing the ring buffer.
const ImmediateTarget = "!"

// Record is a single log call. It lives only for the duration of that call; the message
// is formatted lazily, by the Renderer, and only when the level gate passed.
type Record struct {
	Level  Level
	Target string
	File   string // empty when unknown
	Line   int    // 0 when unknown
	At     time.Time

	// Format is used verbatim when Args is empty, and as a fmt format string otherwise.
	Format string
	Args   []any
	Fields []Field
}

// Immediate reports whether the record bypasses the ring buffer.
func (r *Record) Immediate() bool { return r.Target == ImmediateTarget }

// WriteMessage renders the formatted message followed by the record's fields.
func (r *Record) WriteMessage(w *LineWriter) {
	if len(r.Args) == 0 {
		w.WriteString(r.Format)
	} else {
		fmt.Fprintf(w, r.Format, r.Args...)
	}
	for i := range r.Fields {
		writeField(w, &r.Fields[i])
	}
}

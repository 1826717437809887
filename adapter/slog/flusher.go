package slogadapter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/trickstertwo/delog"
)

// Flusher forwards drained delog text to log/slog, one record per line.
// delog levels share slog's numbering, so the level recovered from the line prefix is
// passed through unchanged. Handlers may retain records, so messages are copied.
type Flusher struct {
	l        *slog.Logger
	fallback delog.Level
	plain    bool
}

func New(l *slog.Logger, fallback delog.Level) *Flusher {
	if l == nil {
		l = slog.Default()
	}
	return &Flusher{l: l, fallback: fallback}
}

func (f *Flusher) Flush(logs string) {
	ctx := context.Background()
	delog.EachLine(logs, func(line string) {
		lvl := slog.Level(f.level(line))
		if !f.l.Enabled(ctx, lvl) {
			return
		}
		f.l.Log(ctx, lvl, strings.Clone(line))
	})
}

// Plain makes f write every line at the fallback level. Use it when the delog logger
// renders without a level prefix, so message text is never mistaken for one.
func (f *Flusher) Plain() *Flusher {
	f.plain = true
	return f
}

func (f *Flusher) level(line string) delog.Level {
	if f.plain {
		return f.fallback
	}
	return delog.LineLevel(line, f.fallback)
}

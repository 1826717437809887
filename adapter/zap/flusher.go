package zapadapter

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/delog"
)

// Flusher forwards drained delog text to go.uber.org/zap, one entry per line.
//
// The level of each entry is recovered from the line prefix written by
// delog.PrefixedRenderer; lines without one are written at the fallback level.
// Cores may keep entries past Flush (observer, buffered sinks), so every message is
// copied out of the borrowed text.
type Flusher struct {
	l        *zap.Logger
	fallback delog.Level
	plain    bool
}

// New creates a Flusher for the provided zap logger.
func New(l *zap.Logger, fallback delog.Level) *Flusher {
	if l == nil {
		l = zap.NewNop()
	}
	return &Flusher{l: l, fallback: fallback}
}

func (f *Flusher) Flush(logs string) {
	delog.EachLine(logs, func(line string) {
		lvl := toZapLevel(f.level(line))
		// Fast path: skip if disabled, before copying.
		if !f.l.Core().Enabled(lvl) {
			return
		}
		if ce := f.l.Check(lvl, strings.Clone(line)); ce != nil {
			ce.Write()
		}
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

// Sync flushes zap's own buffers.
func (f *Flusher) Sync() error { return f.l.Sync() }

func toZapLevel(l delog.Level) zapcore.Level {
	switch {
	case l <= delog.LevelDebug:
		return zapcore.DebugLevel // zap has no trace; map to debug
	case l <= delog.LevelInfo:
		return zapcore.InfoLevel
	case l <= delog.LevelWarn:
		return zapcore.WarnLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}

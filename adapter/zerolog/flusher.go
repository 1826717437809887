package zerologadapter

import (
	"github.com/rs/zerolog"

	"github.com/trickstertwo/delog"
)

// Flusher forwards drained delog text to rs/zerolog, one event per line.
// zerolog encodes the message before Msg returns, so lines are not copied.
type Flusher struct {
	l        zerolog.Logger
	fallback delog.Level
	plain    bool
}

func New(l zerolog.Logger, fallback delog.Level) *Flusher {
	return &Flusher{l: l, fallback: fallback}
}

func (f *Flusher) Flush(logs string) {
	floor := f.l.GetLevel()
	delog.EachLine(logs, func(line string) {
		lvl := mapLevel(f.level(line))
		// Fast path: drop early if below logger's min level (no Event allocation).
		if lvl < floor {
			return
		}
		f.l.WithLevel(lvl).Msg(line)
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

func mapLevel(l delog.Level) zerolog.Level {
	switch {
	case l <= delog.LevelTrace:
		return zerolog.TraceLevel
	case l <= delog.LevelDebug:
		return zerolog.DebugLevel
	case l <= delog.LevelInfo:
		return zerolog.InfoLevel
	case l <= delog.LevelWarn:
		return zerolog.WarnLevel
	case l <= delog.LevelFatal:
		// Fatal is treated as error level to avoid os.Exit side-effects.
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

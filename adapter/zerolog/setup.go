package zerologadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/delog"
)

// Config is an explicit, code-first configuration for a zerolog-flushed delog logger.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	MaxLevel          delog.Level
	Capacity          int    // ring buffer bytes; default delog.DefaultCapacity
	Console           bool   // pretty console output instead of JSON
	ConsoleTimeFormat string // only used if Console==true; default time.RFC3339Nano
	Timestamp         bool   // add zerolog's own flush-time timestamp
	Renderer          delog.Renderer
}

// New builds the zerolog logger described by cfg and a Flusher around it.
func (cfg Config) New() *Flusher {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, NoColor: true}
		if cfg.ConsoleTimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		} else {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}
	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	zl = zl.Level(mapLevel(cfg.MaxLevel))
	return New(zl, cfg.MaxLevel)
}

// Use builds a zerolog-flushed delog logger from Config, installs it as the global
// logger, and returns it. Record timestamps come from xclock.Default().
func Use(cfg Config) (*delog.Logger, error) {
	r := cfg.Renderer
	if r == nil {
		r = delog.PrefixedRenderer{}
	}
	capacity := cfg.Capacity
	if capacity == 0 {
		capacity = delog.DefaultCapacity
	}
	logger, err := delog.NewBuilder().
		WithCapacity(capacity).
		WithMaxLevel(cfg.MaxLevel).
		WithFlusher(cfg.flusherFor(r)).
		WithRenderer(r).
		WithClock(xclock.Default()).
		Build()
	if err != nil {
		return nil, err
	}
	if err := delog.Init(logger); err != nil {
		return nil, err
	}
	return logger, nil
}

// flusherFor builds the Flusher for a logger rendering with r. Renderers without a
// level prefix get a Plain flusher.
func (cfg Config) flusherFor(r delog.Renderer) *Flusher {
	f := cfg.New()
	if !delog.WritesLevelPrefix(r) {
		f.Plain()
	}
	return f
}

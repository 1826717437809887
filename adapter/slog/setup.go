package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/delog"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for a slog-flushed delog logger.
// One call to Use wires it and sets it global.
type Config struct {
	Writer         io.Writer // default: os.Stdout
	MaxLevel       delog.Level
	Capacity       int                  // ring buffer bytes; default delog.DefaultCapacity
	Format         Format               // JSON (default) or Text
	HandlerOptions *slog.HandlerOptions // optional; Level is set from MaxLevel
	Renderer       delog.Renderer
}

// New builds the slog logger described by cfg and a Flusher around it.
func (cfg Config) New() *Flusher {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	var opts slog.HandlerOptions
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}
	opts.Level = slog.Level(cfg.MaxLevel)

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}
	return New(slog.New(h), cfg.MaxLevel)
}

// Use builds a slog-flushed delog logger from Config, sets it as global, and returns it.
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

package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/delog"
)

// Config is an explicit, code-first configuration for a zap-flushed delog logger.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer        io.Writer // default: os.Stdout
	MaxLevel      delog.Level
	Capacity      int                   // ring buffer bytes; default delog.DefaultCapacity
	Console       bool                  // console encoder instead of JSON
	EncoderConfig zapcore.EncoderConfig // if zero, a sensible default is used
	Renderer      delog.Renderer        // default delog.PrefixedRenderer{}; others log every line at MaxLevel
}

// New builds the zap logger described by cfg and a Flusher around it.
func (cfg Config) New() *Flusher {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	encCfg := cfg.EncoderConfig
	if encCfg.MessageKey == "" && encCfg.LevelKey == "" && encCfg.TimeKey == "" {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	}
	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), toZapLevel(cfg.MaxLevel))
	return New(zap.New(core), cfg.MaxLevel)
}

// Use builds a zap-flushed delog logger from Config and installs it as the global
// logger. Timestamps come from xclock.Default(), so frozen clocks are respected.
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

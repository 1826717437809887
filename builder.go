package delog

import (
	"fmt"
	"time"

	"github.com/trickstertwo/xclock"
)

const (
	DefaultCapacity     = 4096
	DefaultNestingDepth = 4

	DefaultFlushInterval = 100 * time.Millisecond
)

// Options holds everything a Logger is constructed from. None of it can change
// after Build.
type Options struct {
	// Capacity is the ring buffer size in bytes.
	Capacity int
	// RenderCapacity bounds a single rendered entry; 0 means Capacity.
	RenderCapacity int
	// MaxLevel is the most verbose level that is still emitted.
	MaxLevel Level

	Flusher Flusher
	// Immediate receives records targeted at ImmediateTarget; nil means Flusher.
	Immediate Flusher
	Renderer  Renderer

	Clock xclock.Clock // optional; defaults to xclock.Default() at log time

	// Caller records file:line of every Event-built record.
	Caller bool
	// NestingDepth is how many log calls may be in flight at once on the nested
	// (interrupt-style) stack. Each level gets its own render buffer.
	NestingDepth int
	// FlushInterval is the period Run uses when it is not given one.
	FlushInterval time.Duration
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	opts Options
}

func NewBuilder() *Builder {
	return &Builder{opts: Options{
		Capacity:      DefaultCapacity,
		MaxLevel:      LevelInfo,
		NestingDepth:  DefaultNestingDepth,
		FlushInterval: DefaultFlushInterval,
	}}
}

func (b *Builder) WithCapacity(n int) *Builder {
	b.opts.Capacity = n
	return b
}

func (b *Builder) WithRenderCapacity(n int) *Builder {
	b.opts.RenderCapacity = n
	return b
}

func (b *Builder) WithMaxLevel(l Level) *Builder {
	b.opts.MaxLevel = l
	return b
}

func (b *Builder) WithFlusher(f Flusher) *Builder {
	b.opts.Flusher = f
	return b
}

func (b *Builder) WithImmediateFlusher(f Flusher) *Builder {
	b.opts.Immediate = f
	return b
}

func (b *Builder) WithRenderer(r Renderer) *Builder {
	b.opts.Renderer = r
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.opts.Clock = c
	return b
}

func (b *Builder) WithCaller(on bool) *Builder {
	b.opts.Caller = on
	return b
}

func (b *Builder) WithNestingDepth(n int) *Builder {
	b.opts.NestingDepth = n
	return b
}

func (b *Builder) WithFlushInterval(d time.Duration) *Builder {
	b.opts.FlushInterval = d
	return b
}

// Build validates the options and allocates every buffer the Logger will ever use.
func (b *Builder) Build() (*Logger, error) {
	o := b.opts
	if o.Flusher == nil {
		return nil, ErrNoFlusher
	}
	if o.Capacity < 0 || o.RenderCapacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity", ErrInvalidConfig)
	}
	if o.NestingDepth <= 0 {
		return nil, fmt.Errorf("%w: nesting depth must be positive, got %d", ErrInvalidConfig, o.NestingDepth)
	}
	if o.FlushInterval < 0 {
		return nil, fmt.Errorf("%w: negative flush interval", ErrInvalidConfig)
	}
	if o.FlushInterval == 0 {
		o.FlushInterval = DefaultFlushInterval
	}
	if o.RenderCapacity == 0 {
		o.RenderCapacity = o.Capacity
	}
	if o.Immediate == nil {
		o.Immediate = o.Flusher
	}
	if o.Renderer == nil {
		o.Renderer = MinimalRenderer{}
	}
	return newLogger(o), nil
}

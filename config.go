package delog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file form of Options. It is read once, at construction.
//
//	capacity: 8192
//	level: debug
//	renderer: prefixed
//	timestamps: true
//	output: stderr
//	flush_interval: 250ms
type Config struct {
	Capacity       int           `yaml:"capacity"`        // ring buffer bytes
	RenderCapacity int           `yaml:"render_capacity"` // bytes per rendered entry; defaults to capacity
	Level          Level         `yaml:"level"`           // trace|debug|info|warn|error|off
	Renderer       string        `yaml:"renderer"`        // minimal|prefixed
	Timestamps     bool          `yaml:"timestamps"`      // prefixed renderer only
	TimeFormat     string        `yaml:"time_format"`     // Go layout; defaults to RFC3339Nano
	Caller         bool          `yaml:"caller"`          // record file:line
	NestingDepth   int           `yaml:"nesting_depth"`   // render buffers for nested calls
	Output         string        `yaml:"output"`          // stdout|stderr
	FlushInterval  time.Duration `yaml:"flush_interval"`  // Logger.Run period when called with 0
}

const (
	RendererMinimal  = "minimal"
	RendererPrefixed = "prefixed"

	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// DefaultConfig returns the values used for every field a configuration leaves out.
func DefaultConfig() Config {
	return Config{
		Capacity:      DefaultCapacity,
		Level:         LevelInfo,
		Renderer:      RendererMinimal,
		NestingDepth:  DefaultNestingDepth,
		Output:        OutputStdout,
		FlushInterval: DefaultFlushInterval,
	}
}

// ParseConfig decodes YAML, fills in defaults and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("delog: read config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	c.Capacity = configValue(d.Capacity, c.Capacity)
	c.Renderer = configValue(d.Renderer, c.Renderer)
	c.NestingDepth = configValue(d.NestingDepth, c.NestingDepth)
	c.Output = configValue(d.Output, c.Output)
	c.FlushInterval = configValue(d.FlushInterval, c.FlushInterval)
	return c
}

// configValue returns def when v is the zero value of T.
func configValue[T comparable](def, v T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func (c Config) Validate() error {
	if c.Capacity < 0 || c.RenderCapacity < 0 {
		return fmt.Errorf("%w: negative capacity", ErrInvalidConfig)
	}
	if c.NestingDepth < 0 {
		return fmt.Errorf("%w: negative nesting_depth", ErrInvalidConfig)
	}
	if c.FlushInterval < 0 {
		return fmt.Errorf("%w: negative flush_interval", ErrInvalidConfig)
	}
	switch c.Renderer {
	case RendererMinimal, RendererPrefixed:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, c.Renderer)
	}
	switch c.Output {
	case OutputStdout, OutputStderr:
	default:
		return fmt.Errorf("%w: unknown output %q", ErrInvalidConfig, c.Output)
	}
	return nil
}

// Builder translates c into a Builder writing to the configured output. Callers may
// keep chaining, for example to swap in their own Flusher.
func (c Config) Builder() *Builder {
	var r Renderer = MinimalRenderer{}
	if c.Renderer == RendererPrefixed {
		r = PrefixedRenderer{Timestamps: c.Timestamps, TimeFormat: c.TimeFormat}
	}
	var f Flusher = Stdout()
	if c.Output == OutputStderr {
		f = Stderr()
	}
	return NewBuilder().
		WithCapacity(c.Capacity).
		WithRenderCapacity(c.RenderCapacity).
		WithMaxLevel(c.Level).
		WithRenderer(r).
		WithFlusher(f).
		WithCaller(c.Caller).
		WithNestingDepth(c.NestingDepth).
		WithFlushInterval(c.FlushInterval)
}

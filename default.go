package delog

import (
	"fmt"
	"sync/atomic"
)

// Facade: process-wide logger (Singleton + Facade).
var global atomic.Pointer[Logger]

// Init installs l as the global logger. Only the first successful call among any
// racing initializers wins; every later call returns ErrAlreadyInitialized and leaves
// the first logger in place. There is no way to uninstall it.
func Init(l *Logger) error {
	if l == nil {
		return fmt.Errorf("%w: nil logger", ErrInvalidConfig)
	}
	if !global.CompareAndSwap(nil, l) {
		return ErrAlreadyInitialized
	}
	return nil
}

// InitWith builds a logger with the default capacity around flusher and renderer and
// installs it. A nil renderer selects MinimalRenderer.
func InitWith(maxLevel Level, flusher Flusher, renderer Renderer) (*Logger, error) {
	l, err := NewBuilder().
		WithMaxLevel(maxLevel).
		WithFlusher(flusher).
		WithRenderer(renderer).
		Build()
	if err != nil {
		return nil, err
	}
	if err := Init(l); err != nil {
		return nil, err
	}
	return l, nil
}

// InitDefault is InitWith using the default renderer.
func InitDefault(maxLevel Level, flusher Flusher) (*Logger, error) {
	return InitWith(maxLevel, flusher, nil)
}

// L returns the global Logger. Before Init it returns a disabled logger, so library
// code may log unconditionally.
func L() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return disabledLogger
}

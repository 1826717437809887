//go:build !delog_off

package delog

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	global.Store(nil)
	t.Cleanup(func() { global.Store(nil) })
}

func TestL_BeforeInitIsDisabled(t *testing.T) {
	resetGlobal(t)

	if L() == nil {
		t.Fatal("L() returned nil")
	}
	Info().Str("k", "v").Msg("nobody listens")
	Flush()
	if err := L().TryLog(&Record{Level: LevelError, Format: "x"}); err != nil {
		t.Fatalf("disabled logger returned %v", err)
	}
	if st := Stats(); st != (Statistics{}) {
		t.Fatalf("expected zero stats, got %+v", st)
	}
	if L().Capacity() != 0 {
		t.Fatal("disabled logger has capacity")
	}
}

func TestInit_OnlyFirstWins(t *testing.T) {
	resetGlobal(t)
	first := &recordingFlusher{}
	second := &recordingFlusher{}

	l, err := InitDefault(LevelDebug, first)
	if err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := InitWith(LevelTrace, second, PrefixedRenderer{}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
	if L() != l {
		t.Fatal("second init replaced the global logger")
	}

	Debug().Msg("hello")
	Trace().Msg("filtered")
	Flush()
	if first.all() != "hello\n" || second.count() != 0 {
		t.Fatalf("first=%q second=%d", first.all(), second.count())
	}
	if st := Stats(); st.Attempts != 1 || st.Flushes != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestInit_Race(t *testing.T) {
	resetGlobal(t)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := NewBuilder().WithFlusher(FlusherFunc(func(string) {})).Build()
			if err != nil {
				t.Error(err)
				return
			}
			if Init(l) == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("%d initializers succeeded", wins)
	}
}

func TestInit_NilLogger(t *testing.T) {
	resetGlobal(t)
	if err := Init(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := InitDefault(LevelInfo, nil); !errors.Is(err, ErrNoFlusher) {
		t.Fatalf("expected ErrNoFlusher, got %v", err)
	}
}

func TestScope_GatesBeforeGlobal(t *testing.T) {
	resetGlobal(t)
	f := &recordingFlusher{}
	if _, err := InitWith(LevelTrace, f, PrefixedRenderer{}); err != nil {
		t.Fatal(err)
	}

	lib := NewScope("lib", LevelWarn)
	lib.Info().Msg("quiet")
	lib.Warn().Msg("loud")
	lib.Error().Target("lib::io").Msg("custom target")
	lib.Log(&Record{Level: LevelError, Format: "record"})
	lib.Log(&Record{Level: LevelDebug, Format: "gated record"})
	Flush()

	want := "WARN|lib: loud\nERROR|lib::io: custom target\nERROR|lib: record\n"
	if got := f.all(); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	if lib.Enabled(LevelInfo) || !lib.Enabled(LevelWarn) {
		t.Fatal("scope Enabled disagrees with its level")
	}
	if st := Stats(); st.Attempts != 3 {
		t.Fatalf("gated scope calls were counted: %+v", st)
	}
}

func TestScope_OffAndAll(t *testing.T) {
	resetGlobal(t)
	f := &recordingFlusher{}
	if _, err := InitWith(LevelInfo, f, PrefixedRenderer{}); err != nil {
		t.Fatal(err)
	}

	off := NewScope("off", LevelOff)
	off.Error().Msg("never")
	if err := off.TryLog(&Record{Level: LevelError, Format: "never"}); err != nil {
		t.Fatal(err)
	}

	all := NewScope("all", ScopeAll)
	all.Trace().Msg("global still gates")
	all.Info().Msg("through")
	Flush()

	if got := f.all(); got != "INFO|all: through\n" {
		t.Fatalf("got %q", got)
	}
	if all.Name() != "all" {
		t.Fatalf("name=%q", all.Name())
	}
}

func TestConfigToGlobal(t *testing.T) {
	resetGlobal(t)
	path := filepath.Join(t.TempDir(), "delog.yaml")
	if err := os.WriteFile(path, []byte("capacity: 128\nlevel: warn\nrenderer: prefixed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := &recordingFlusher{}
	l, err := cfg.Builder().WithFlusher(f).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := Init(l); err != nil {
		t.Fatal(err)
	}

	Info().Msg("hidden")
	Warn().Target("cfg").Msg("shown")
	Flush()
	if got := f.all(); got != "WARN|cfg: shown\n" {
		t.Fatalf("got %q", got)
	}
	if L().Capacity() != 128 {
		t.Fatalf("capacity=%d", L().Capacity())
	}
}

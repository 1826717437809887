//go:build !delog_off

package delog

import (
	"errors"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
)

// blackhole variables prevent compiler from optimizing away code paths.
var (
	bhLen int
	bhErr error
)

func nopFlusher() Flusher {
	return FlusherFunc(func(logs string) { bhLen = len(logs) })
}

func newBenchLogger(maxLevel Level, r Renderer) *Logger {
	l, err := NewBuilder().
		WithCapacity(1 << 16).
		WithMaxLevel(maxLevel).
		WithFlusher(nopFlusher()).
		WithRenderer(r).
		WithClock(xclock.NewFrozen(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))).
		Build()
	if err != nil {
		panic(err)
	}
	return l
}

func BenchmarkInfo_NoFields(b *testing.B) {
	l := newBenchLogger(LevelDebug, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info().Msg("ok")
		if i&1023 == 1023 {
			l.Flush()
		}
	}
}

func BenchmarkInfo_5Fields(b *testing.B) {
	l := newBenchLogger(LevelDebug, nil)
	err := errors.New("boom")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info().
			Str("svc", "payments").
			Int("port", 8080).
			Bool("ok", true).
			Dur("lat", 125*time.Millisecond).
			Err(err).
			Msg("request")
		if i&255 == 255 {
			l.Flush()
		}
	}
}

func BenchmarkInfo_Prefixed(b *testing.B) {
	l := newBenchLogger(LevelDebug, PrefixedRenderer{Timestamps: true})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Info().Target("bench").Msg("ok")
		if i&511 == 511 {
			l.Flush()
		}
	}
}

func BenchmarkDisabledLevel(b *testing.B) {
	l := newBenchLogger(LevelWarn, nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Debug().Str("k", "v").Int("n", i).Msg("skipped")
	}
}

func BenchmarkTryLog_Full(b *testing.B) {
	l := newBenchLogger(LevelDebug, nil)
	for l.Info().TryMsg("fill the ring until it rejects") == nil {
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bhErr = l.Info().TryMsg("rejected")
	}
}

func BenchmarkEnqueueDrain(b *testing.B) {
	s := NewStore(4096)
	entry := []byte("a typical rendered log line of moderate length\n")
	dst := make([]byte, 4096)
	b.SetBytes(int64(len(entry)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if Enqueue(s, entry) != nil {
			bhLen = len(Drain(s, dst))
			_ = Enqueue(s, entry)
		}
	}
}

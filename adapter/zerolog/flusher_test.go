package zerologadapter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/delog"
)

func decodeLines(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var res []map[string]any
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), "line=%s", sc.Text())
		res = append(res, m)
	}
	return res
}

func TestFlusher_LevelsFromPrefix(t *testing.T) {
	var out bytes.Buffer
	f := New(zerolog.New(&out), delog.LevelInfo)

	f.Flush("DEBUG|a: d\nWARN|a: w\nno prefix\n")

	got := decodeLines(t, &out)
	require.Len(t, got, 3)
	require.Equal(t, "debug", got[0]["level"])
	require.Equal(t, "warn", got[1]["level"])
	require.Equal(t, "info", got[2]["level"])
	require.Equal(t, "no prefix", got[2]["message"])
}

func TestFlusher_DropsBelowLoggerLevel(t *testing.T) {
	var out bytes.Buffer
	f := New(zerolog.New(&out).Level(zerolog.WarnLevel), delog.LevelInfo)

	f.Flush("INFO|a: dropped\nERROR|a: kept\n")

	got := decodeLines(t, &out)
	require.Len(t, got, 1)
	require.Equal(t, "error", got[0]["level"])
}

func TestMapLevel(t *testing.T) {
	cases := map[delog.Level]zerolog.Level{
		delog.LevelTrace: zerolog.TraceLevel,
		delog.LevelDebug: zerolog.DebugLevel,
		delog.LevelInfo:  zerolog.InfoLevel,
		delog.LevelWarn:  zerolog.WarnLevel,
		delog.LevelError: zerolog.ErrorLevel,
		delog.LevelFatal: zerolog.ErrorLevel,
		delog.LevelOff:   zerolog.Disabled,
	}
	for in, want := range cases {
		require.Equal(t, want, mapLevel(in), "level %v", in)
	}
}

func TestUse_ConsoleOutput(t *testing.T) {
	var out bytes.Buffer
	l, err := Use(Config{Writer: &out, MaxLevel: delog.LevelDebug, Console: true})
	require.NoError(t, err)
	require.Same(t, l, delog.L())

	delog.Debug().Target("boot").Str("stage", "init").Msg("starting")
	delog.Flush()

	line := out.String()
	require.True(t, strings.Contains(line, "DEBUG|boot: starting stage=init"), "got %q", line)
	require.Equal(t, uint64(1), delog.Stats().Successes)
}

func TestFlusher_MinimalRendererLinesStayAtFallback(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Writer: &out, MaxLevel: delog.LevelInfo}
	l, err := delog.NewBuilder().
		WithRenderer(delog.MinimalRenderer{}).
		WithFlusher(cfg.flusherFor(delog.MinimalRenderer{})).
		Build()
	require.NoError(t, err)

	l.Info().Msg("ERROR|not really an error")
	l.Flush()

	got := decodeLines(t, &out)
	require.Len(t, got, 1)
	require.Equal(t, "info", got[0]["level"])
	require.Equal(t, "ERROR|not really an error", got[0]["message"])
}

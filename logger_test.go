package lfgbwt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Operations(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.LogBuildStart(ctx, 10, 100)
	l.LogBuild(ctx, 10, 100, time.Millisecond, nil)
	l.LogBuild(ctx, 10, 100, time.Millisecond, errors.New("boom"))
	l.LogVerify(ctx, 10, nil)
	l.LogSave(ctx, "graph.lfgbwt", 512, nil)
	l.LogLoad(ctx, "graph.lfgbwt", 512, errors.New("corrupt"))
	l.WithNode(4).WithPath("graph.lfgbwt").Info("row")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 7)

	assert.Equal(t, "constructing index", lines[0]["msg"])
	assert.EqualValues(t, 100, lines[0]["total_length"])
	assert.Equal(t, "index constructed", lines[1]["msg"])
	assert.Equal(t, "ERROR", lines[2]["level"])
	assert.Equal(t, "boom", lines[2]["error"])
	assert.Equal(t, "verification passed", lines[3]["msg"])
	assert.EqualValues(t, 512, lines[4]["bytes"])
	assert.Equal(t, "load failed", lines[5]["msg"])
	assert.EqualValues(t, 4, lines[6]["node"])
	assert.Equal(t, "graph.lfgbwt", lines[6]["path"])
}

func TestLogger_Constructors(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelWarn))
	assert.NotNil(t, NewTextLogger(slog.LevelInfo))

	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}

	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newTeeHandler(nil, inner); h != inner {
		t.Fatalf("expected single handler unwrapped, got %T", h)
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	var warnBuf, debugBuf bytes.Buffer
	warn := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})
	debug := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newTeeHandler(warn, debug)).With("run_id", "r1").WithGroup("stats")
	logger.Debug("row detail", "line", 3)
	logger.Warn("rows skipped", "count", 2)

	if strings.Contains(warnBuf.String(), "row detail") {
		t.Fatalf("warn handler received debug record: %q", warnBuf.String())
	}
	for _, want := range []string{"row detail", "rows skipped", "run_id=r1", "stats.count=2"} {
		if !strings.Contains(debugBuf.String(), want) {
			t.Fatalf("expected %q in %q", want, debugBuf.String())
		}
	}
	if !strings.Contains(warnBuf.String(), "stats.count=2") {
		t.Fatalf("expected grouped attr in warn output, got %q", warnBuf.String())
	}
}

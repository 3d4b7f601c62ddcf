package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))), buf
}

func TestSlogLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger()
	ctx := context.Background()

	l.Debug(ctx, "debug msg")
	l.Info(ctx, "info msg", "key", "value")
	l.Warn(ctx, "warn msg")
	l.Error(ctx, "error msg")

	out := buf.String()
	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", `"key":"value"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufferLogger()

	child := l.With("module", "test")
	child.Info(context.Background(), "hello")

	if !strings.Contains(buf.String(), `"module":"test"`) {
		t.Fatalf("child logger missing bound attribute:\n%s", buf.String())
	}
}

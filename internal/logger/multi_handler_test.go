package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	log := slog.New(h)

	log.Info("hello", "k", "v")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("%s handler missed the record", name)
		}
	}
}

func TestMultiHandlerSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewJSONHandler(&buf, nil), nil)

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected enabled with one live handler")
	}

	slog.New(h).Info("survives")
	if !strings.Contains(buf.String(), "survives") {
		t.Error("record lost")
	}
}

func TestMultiHandlerRespectsLevels(t *testing.T) {
	var quiet, chatty bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewJSONHandler(&chatty, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	slog.New(h).Info("routed")

	if quiet.Len() != 0 {
		t.Error("error-level handler must not receive info records")
	}
	if !strings.Contains(chatty.String(), "routed") {
		t.Error("debug-level handler missed the record")
	}
}

// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestAppendCtx(t *testing.T) {
	ctx := AppendCtx(context.TODO(), slog.String("key1", "value1"))
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	if attrs[0].Key != "key1" || attrs[0].Value.String() != "value1" {
		t.Errorf("unexpected attribute %s=%s", attrs[0].Key, attrs[0].Value.String())
	}
}

func TestAppendCtx_NilParent(t *testing.T) {
	ctx := AppendCtx(nil, slog.String("key", "value")) //nolint:staticcheck
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok || len(attrs) != 1 {
		t.Fatal("expected 1 attribute in context")
	}
}

func TestAppendCtx_Accumulates(t *testing.T) {
	ctx := context.Background()
	ctx = AppendCtx(ctx, slog.String("key1", "value1"))
	ctx = AppendCtx(ctx, slog.Int("key2", 42))
	ctx = AppendCtx(ctx, slog.Bool("key3", true))

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	expectedKeys := []string{"key1", "key2", "key3"}
	for i, expectedKey := range expectedKeys {
		if attrs[i].Key != expectedKey {
			t.Errorf("expected key[%d] %q, got %q", i, expectedKey, attrs[i].Key)
		}
	}
}

func TestContextHandler_Handle(t *testing.T) {
	var captured *slog.Record
	handler := contextHandler{Handler: &testSlogHandler{
		handleFunc: func(ctx context.Context, r slog.Record) error {
			captured = &r
			return nil
		},
	}}

	ctx := AppendCtx(context.Background(), slog.String("ctx_key", "ctx_value"))
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "test message", 0)

	if err := handler.Handle(ctx, record); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if captured == nil {
		t.Fatal("expected record to be captured")
	}

	found := false
	captured.Attrs(func(a slog.Attr) bool {
		if a.Key == "ctx_key" {
			found = true
		}
		return true
	})
	if !found {
		t.Error("expected context attribute to be added to record")
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", logLevelDefault},
		{"", logLevelDefault},
	}
	for _, tc := range testCases {
		if got := parseLevel(tc.value); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestInitStructureLogConfig(t *testing.T) {
	originalLogLevel := os.Getenv("LOG_LEVEL")
	defer func() {
		if originalLogLevel != "" {
			os.Setenv("LOG_LEVEL", originalLogLevel)
		} else {
			os.Unsetenv("LOG_LEVEL")
		}
	}()

	for _, level := range []string{"debug", "warn", "error", "info", "unknown"} {
		os.Setenv("LOG_LEVEL", level)
		if handler := InitStructureLogConfig(); handler == nil {
			t.Errorf("expected non-nil handler for level %q", level)
		}
	}
}

// testSlogHandler is a helper for testing
type testSlogHandler struct {
	handleFunc func(context.Context, slog.Record) error
}

func (h *testSlogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *testSlogHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.handleFunc != nil {
		return h.handleFunc(ctx, r)
	}
	return nil
}

func (h *testSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *testSlogHandler) WithGroup(name string) slog.Handler {
	return h
}

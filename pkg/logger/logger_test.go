package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newTestLogger creates a Logger backed by traceHandler writing to buf.
func newTestLogger(buf *bytes.Buffer) Logger {
	sl := slog.New(&traceHandler{slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})})
	return &slogLogger{Logger: sl}
}

func parseLastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = lines[i]
			break
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("failed to parse log line %q: %v", last, err)
	}
	return m
}

// TestInfoContext_WithSpan verifies trace_id and span_id are injected when
// an active span is in context.
func TestInfoContext_WithSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	log.InfoContext(ctx, "with span")
	span.End()

	m := parseLastLine(t, &buf)
	if m["trace_id"] == nil || m["span_id"] == nil {
		t.Fatalf("expected trace_id and span_id in record: %v", m)
	}
}

// TestInfoContext_WithoutSpan verifies no trace fields are added absent a span.
func TestInfoContext_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.InfoContext(context.Background(), "no span")

	m := parseLastLine(t, &buf)
	if _, ok := m["trace_id"]; ok {
		t.Fatalf("unexpected trace_id in record: %v", m)
	}
}

// TestInfoContext_RequestID verifies the chi request id is injected from context.
func TestInfoContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	log.InfoContext(ctx, "with request id")

	m := parseLastLine(t, &buf)
	if m["request_id"] != "req-123" {
		t.Fatalf("expected request_id=req-123, got %v", m["request_id"])
	}
}

func TestWith_BindsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf).With("component", "worker")

	log.Info("bound attrs")

	m := parseLastLine(t, &buf)
	if m["component"] != "worker" {
		t.Fatalf("expected component=worker, got %v", m["component"])
	}
}

func TestMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	h := Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/graphql", http.NoBody))

	m := parseLastLine(t, &buf)
	if m["method"] != "GET" || m["path"] != "/graphql" {
		t.Fatalf("unexpected request log: %v", m)
	}
	if int(m["status"].(float64)) != http.StatusTeapot {
		t.Fatalf("expected status 418, got %v", m["status"])
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	h := Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	m := parseLastLine(t, &buf)
	if m["msg"] != "panic recovered" {
		t.Fatalf("expected panic log, got %v", m)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

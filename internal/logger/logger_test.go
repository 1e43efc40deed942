package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

func TestNew(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		l := New("production")
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})

	t.Run("development", func(t *testing.T) {
		l := New("development")
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})
}

type mockSpan struct {
	trace.Span
	sc trace.SpanContext
}

func (s mockSpan) SpanContext() trace.SpanContext {
	return s.sc
}

func TestWithTraceContext(t *testing.T) {
	t.Run("valid span", func(t *testing.T) {
		traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		spanID, _ := trace.SpanIDFromHex("0102030405060708")
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		})
		ctx := trace.ContextWithSpan(context.Background(), mockSpan{sc: sc})

		attr := WithTraceContext(ctx)
		if attr.Key != "trace" {
			t.Errorf("expected key 'trace', got %s", attr.Key)
		}

		group := attr.Value.Group()
		if len(group) != 2 {
			t.Errorf("expected 2 attributes in group, got %d", len(group))
		}

		foundTraceID := false
		foundSpanID := false
		for _, a := range group {
			if a.Key == "trace_id" && a.Value.String() == "0102030405060708090a0b0c0d0e0f10" {
				foundTraceID = true
			}
			if a.Key == "span_id" && a.Value.String() == "0102030405060708" {
				foundSpanID = true
			}
		}

		if !foundTraceID {
			t.Error("trace_id not found or incorrect")
		}
		if !foundSpanID {
			t.Error("span_id not found or incorrect")
		}
	})

	t.Run("invalid span", func(t *testing.T) {
		ctx := context.Background()
		attr := WithTraceContext(ctx)
		if !attr.Equal(slog.Attr{}) {
			t.Errorf("expected empty attribute for invalid span, got %+v", attr)
		}
	})
}

func TestNewWithWriter(t *testing.T) {
	t.Run("production writes JSON", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewWithWriter("production", &buf)
		l.Info("Generation succeeded", "capability", "generate-recipe")

		if !strings.HasPrefix(buf.String(), "{") {
			t.Errorf("expected JSON output, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), `"capability":"generate-recipe"`) {
			t.Errorf("expected capability attribute, got %q", buf.String())
		}
	})

	t.Run("production skips debug", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter("production", &buf).Debug("noisy")
		if buf.Len() != 0 {
			t.Errorf("expected no output for debug in production, got %q", buf.String())
		}
	})

	t.Run("development logs debug", func(t *testing.T) {
		var buf bytes.Buffer
		NewWithWriter("development", &buf).Debug("noisy")
		if !strings.Contains(buf.String(), "noisy") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})
}

func TestNewWithLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel("cli", &buf, slog.LevelWarn)
	l.Info("Retrying generation")
	l.Warn("Provider slow")

	if strings.Contains(buf.String(), "Retrying generation") {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Provider slow") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		env, override string
		want          slog.Level
	}{
		{"production", "", slog.LevelInfo},
		{"development", "", slog.LevelDebug},
		{"production", "debug", slog.LevelDebug},
		{"development", "WARN", slog.LevelWarn},
		{"development", "error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := levelFor(tt.env, tt.override); got != tt.want {
			t.Errorf("levelFor(%q, %q) = %v, want %v", tt.env, tt.override, got, tt.want)
		}
	}
}

func TestToOTelValue_Group(t *testing.T) {
	v := toOTelValue(slog.GroupValue(slog.String("trace_id", "abc"), slog.Int("n", 2)))
	if v.Kind() != log.KindMap {
		t.Fatalf("expected map value, got %v", v.Kind())
	}
	if got := len(v.AsMap()); got != 2 {
		t.Errorf("expected 2 entries, got %d", got)
	}
}

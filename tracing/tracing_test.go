package tracing

import (
	"errors"
	"testing"

	"github.com/opentracing/opentracing-go/mocktracer"
)

func TestSpan(t *testing.T) {
	tracer := mocktracer.New()
	span := NewSpan(tracer, "FileStore.ReadSplit", "42")
	Error(span, nil)
	Error(span, errors.New("disk full"))
	span.Finish()

	spans := tracer.FinishedSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.OperationName != "FileStore.ReadSplit" {
		t.Fatalf("expected operation FileStore.ReadSplit, got %s", s.OperationName)
	}
	if s.Tag("metric") != "42" {
		t.Fatalf("expected metric tag 42, got %v", s.Tag("metric"))
	}
	if s.Tag("error") != true {
		t.Fatalf("expected error tag, got %v", s.Tag("error"))
	}
	if len(s.Logs()) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(s.Logs()))
	}
}

func TestGetTracerDisabled(t *testing.T) {
	tracer, closer, err := GetTracer("mt-splits", false, "localhost:6831", map[string]string{"host": "test"})
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	defer closer.Close()
	span := NewSpan(tracer, "noop", "42")
	span.Finish()
}

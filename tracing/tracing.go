// Package tracing has helpers to trace store operations with opentracing
package tracing

import (
	opentracing "github.com/opentracing/opentracing-go"
	tags "github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

// NewSpan starts a root span for a store operation on the given metric.
// callers must call span.Finish() when done
func NewSpan(tracer opentracing.Tracer, name, metric string) opentracing.Span {
	span := tracer.StartSpan(name)
	tags.SpanKindRPCClient.Set(span)
	span.SetTag("metric", metric)
	return span
}

// Error marks the span as failed, and logs error. nil errors are ignored
func Error(span opentracing.Span, err error) {
	if err == nil {
		return
	}
	tags.Error.Set(span, true)
	span.LogFields(log.Error(err))
}

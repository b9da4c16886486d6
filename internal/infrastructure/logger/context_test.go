package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestContextValues(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithCollectorID(ctx, "collector-7")
	ctx = WithUserID(ctx, "user-3")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "collector-7", GetCollectorID(ctx))
	assert.Equal(t, "user-3", GetUserID(ctx))
	assert.Empty(t, GetTraceID(ctx))
}

func TestL_AddsCorrelationFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = WithContext(ctx, zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithCollectorID(ctx, "collector-7")

	L(ctx).Info("Payment registered")

	entries := recorded.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, traceID.String(), fields["trace_id"])
		assert.Equal(t, spanID.String(), fields["span_id"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "collector-7", fields["collector_id"])
		assert.NotContains(t, fields, "user_id")
	}
	assert.Equal(t, traceID.String(), GetTraceID(ctx))
}

func TestEnrich_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Enrich(context.Background(), nil).Info("dropped")
	})
}

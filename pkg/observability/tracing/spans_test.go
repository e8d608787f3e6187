package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	spanRecorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(spanRecorder),
	)
	otel.SetTracerProvider(provider)

	return spanRecorder
}

func TestStartActionSpan(t *testing.T) {
	recorder := setupTestTracer(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		action        string
		opts          []ActionSpanOption
		expectedName  string
		expectedAttrs map[string]string
	}{
		{
			name:         "action without options",
			action:       "findOne",
			opts:         nil,
			expectedName: "DataAPI findOne",
			expectedAttrs: map[string]string{
				"db.operation": "findOne",
			},
		},
		{
			name:   "action with collection",
			action: "deleteOne",
			opts: []ActionSpanOption{
				WithCollection("tasks"),
			},
			expectedName: "DataAPI deleteOne tasks",
			expectedAttrs: map[string]string{
				"db.operation":  "deleteOne",
				"db.collection": "tasks",
			},
		},
		{
			name:   "action with all options",
			action: "aggregate",
			opts: []ActionSpanOption{
				WithDataSource("Cluster0"),
				WithDatabase("production"),
				WithCollection("tasks"),
			},
			expectedName: "DataAPI aggregate tasks",
			expectedAttrs: map[string]string{
				"db.operation":   "aggregate",
				"db.data_source": "Cluster0",
				"db.name":        "production",
				"db.collection":  "tasks",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder.Reset()

			_, span := StartActionSpan(ctx, tt.action, tt.opts...)
			if span == nil {
				t.Fatal("expected span to be non-nil")
			}
			span.End()

			spans := recorder.Ended()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}

			recordedSpan := spans[0]
			if recordedSpan.Name() != tt.expectedName {
				t.Errorf("expected span name %q, got %q", tt.expectedName, recordedSpan.Name())
			}

			attrs := map[string]string{}
			for _, attr := range recordedSpan.Attributes() {
				attrs[string(attr.Key)] = attr.Value.AsString()
			}
			for key, expected := range tt.expectedAttrs {
				if attrs[key] != expected {
					t.Errorf("expected attribute %s=%q, got %q", key, expected, attrs[key])
				}
			}
		})
	}
}

func TestRecordError(t *testing.T) {
	recorder := setupTestTracer(t)

	_, span := StartActionSpan(context.Background(), "find")
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status().Code)
	}
	if len(spans[0].Events()) == 0 {
		t.Errorf("expected recorded error event")
	}
}

func TestRecordError_NilError(t *testing.T) {
	recorder := setupTestTracer(t)

	_, span := StartActionSpan(context.Background(), "find")
	RecordError(span, nil)
	span.End()

	spans := recorder.Ended()
	if spans[0].Status().Code == codes.Error {
		t.Errorf("nil error must not mark the span failed")
	}
}

func TestRecordSuccess(t *testing.T) {
	recorder := setupTestTracer(t)

	_, span := StartActionSpan(context.Background(), "insertOne")
	RecordSuccess(span)
	span.End()

	spans := recorder.Ended()
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("expected ok status, got %v", spans[0].Status().Code)
	}
}

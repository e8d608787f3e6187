// Package tracing provides OpenTelemetry spans for Data API operations.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartActionSpan creates a client-kind span for one Data API action.
// The span name is "DataAPI <action>", or "DataAPI <action> <collection>"
// when the collection option is set.
func StartActionSpan(ctx context.Context, action string, opts ...ActionSpanOption) (context.Context, trace.Span) {
	tracer := otel.Tracer("dataapi")

	spanOpts := &actionSpanOptions{
		attributes: []attribute.KeyValue{
			attribute.String("db.operation", action),
		},
	}

	for _, opt := range opts {
		opt(spanOpts)
	}

	spanName := fmt.Sprintf("DataAPI %s", action)
	if spanOpts.collection != "" {
		spanName = fmt.Sprintf("DataAPI %s %s", action, spanOpts.collection)
	}

	ctx, span := tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(spanOpts.attributes...)

	return ctx, span
}

// ActionSpanOption configures a Data API action span.
type ActionSpanOption func(*actionSpanOptions)

type actionSpanOptions struct {
	collection string
	attributes []attribute.KeyValue
}

// WithDataSource sets the cluster alias attribute for the span.
func WithDataSource(dataSource string) ActionSpanOption {
	return func(opts *actionSpanOptions) {
		opts.attributes = append(opts.attributes, attribute.String("db.data_source", dataSource))
	}
}

// WithDatabase sets the database name attribute for the span.
func WithDatabase(database string) ActionSpanOption {
	return func(opts *actionSpanOptions) {
		opts.attributes = append(opts.attributes, attribute.String("db.name", database))
	}
}

// WithCollection sets the collection name attribute for the span.
func WithCollection(collection string) ActionSpanOption {
	return func(opts *actionSpanOptions) {
		opts.collection = collection
		opts.attributes = append(opts.attributes, attribute.String("db.collection", collection))
	}
}

// RecordError records an error in the span and sets the span status to error.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// RecordSuccess sets the span status to OK.
func RecordSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

package console

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var consoleTracer = otel.Tracer("tourney-admin/internal/console")
var consoleNoopSpan = trace.SpanFromContext(context.Background())

// startConsoleSpan opens a child span only when the incoming context already
// carries a recorded trace; untraced runs stay span-free.
func startConsoleSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, consoleNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, consoleNoopSpan
	}
	return consoleTracer.Start(ctx, name)
}

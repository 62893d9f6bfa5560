package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/profedit/pkg/log"
)

// WithTracing wraps a tool handler with an OpenTelemetry span and structured
// logging. Errors are recorded on the span before being returned to the SDK,
// which reports them to the client as tool errors.
func WithTracing[In, Out any](tracer trace.Tracer, handler mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		name := "tool"
		attrs := []slog.Attr{}

		if req != nil && req.Params != nil {
			name = req.Params.Name
			attrs = append(attrs,
				slog.Any("progress_token", req.Params.GetProgressToken()),
				slog.String("args", string(req.Params.Arguments)),
			)
		}

		ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attribute.String("mcp.tool", name)))
		defer span.End()

		logger := log.WithContext(ctx).With(slog.String("tool", name))
		logger.LogAttrs(ctx, slog.LevelDebug, "handling tool call", attrs...)

		result, out, err := handler(ctx, req, in)
		if err != nil {
			logger.ErrorContext(ctx, "tool call failed", slog.Any("err", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return result, out, err
		}

		logger.DebugContext(ctx, "tool call completed")

		return result, out, nil
	}
}

package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields returns a context whose logger carries fields.
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	return ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(fields...))
}

// WithAction tags the context logger with the handler or use case flow.
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithSequence tags the context logger with a sequence id.
func WithSequence(ctx context.Context, sequenceID string) context.Context {
	return AddFields(ctx, zap.String("sequence_id", sequenceID))
}

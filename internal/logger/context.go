package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	requestIDKey   contextKey = "request_id"
	candidateIDKey contextKey = "candidate_id"
)

// WithRequestID attaches a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithCandidateID attaches a candidate ID to the context.
func WithCandidateID(ctx context.Context, candidateID string) context.Context {
	return context.WithValue(ctx, candidateIDKey, candidateID)
}

// GetRequestID extracts the request ID from the context, if any.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetCandidateID extracts the candidate ID from the context, if any.
func GetCandidateID(ctx context.Context) string {
	if candidateID, ok := ctx.Value(candidateIDKey).(string); ok {
		return candidateID
	}
	return ""
}

// FromContext returns a logger carrying request_id and candidate_id
// fields when they are present in the context.
func FromContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()

	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	if candidateID := GetCandidateID(ctx); candidateID != "" {
		fields = append(fields, "candidate_id", candidateID)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError logs an error message with the error object attached.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	fields := append([]any{"error", err.Error()}, args...)
	FromContext(ctx).Error(msg, fields...)
}

package logging

import "context"

type logDataContextKey struct{}

// LogDataKey keys the per-request LogData in request contexts. Exposed so the
// API layer's middleware can attach it through huma's context wrapper.
var LogDataKey any = logDataContextKey{}

// WithLogData returns a context carrying the LogData.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, LogDataKey, logData)
}

// GetLogData returns the request's LogData, or nil when none is attached.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(LogDataKey).(*LogData)
	return logData
}

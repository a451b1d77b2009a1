package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the structured logger used across the SDK
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})
}

type contextKey string

const requestIDKey contextKey = "logging.request_id"

// WithRequestID attaches a request id that is added to every log entry
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored on the context, if any
func RequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// ZeroLogger implements Logger on top of zerolog
type ZeroLogger struct {
	logger zerolog.Logger
}

// Option configures a ZeroLogger
type Option func(*zerolog.Logger)

// WithLevel sets the minimum level
func WithLevel(level string) Option {
	return func(l *zerolog.Logger) {
		*l = l.Level(ParseLevel(level))
	}
}

// WithOutput redirects log output
func WithOutput(w io.Writer) Option {
	return func(l *zerolog.Logger) {
		*l = l.Output(w)
	}
}

// WithConsole switches to human readable console output
func WithConsole() Option {
	return func(l *zerolog.Logger) {
		*l = l.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// New creates a logger writing JSON to stderr at info level
func New(options ...Option) *ZeroLogger {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	for _, opt := range options {
		opt(&l)
	}
	return &ZeroLogger{logger: l}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *ZeroLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, l.logger.Debug(), msg, fields)
}

func (l *ZeroLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, l.logger.Info(), msg, fields)
}

func (l *ZeroLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, l.logger.Warn(), msg, fields)
}

func (l *ZeroLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, l.logger.Error(), msg, fields)
}

func (l *ZeroLogger) write(ctx context.Context, event *zerolog.Event, msg string, fields map[string]interface{}) {
	if event == nil {
		return
	}
	if id, ok := RequestID(ctx); ok {
		event = event.Str("request_id", id)
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

// NoOpLogger discards everything
type NoOpLogger struct{}

// NewNoOpLogger returns a logger that discards all entries
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (NoOpLogger) Debug(context.Context, string, map[string]interface{}) {}
func (NoOpLogger) Info(context.Context, string, map[string]interface{})  {}
func (NoOpLogger) Warn(context.Context, string, map[string]interface{})  {}
func (NoOpLogger) Error(context.Context, string, map[string]interface{}) {}

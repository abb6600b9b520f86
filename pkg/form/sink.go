package form

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/goliatone/go-regform/pkg/schema"
)

// Submission is a validated record handed to the sink.
type Submission struct {
	ID          string        `json:"id"`
	Record      schema.Record `json:"record"`
	SubmittedAt time.Time     `json:"submittedAt"`
}

// Sink receives successful submissions.
type Sink interface {
	Accept(ctx context.Context, sub Submission) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, sub Submission) error

// Accept calls fn.
func (fn SinkFunc) Accept(ctx context.Context, sub Submission) error {
	return fn(ctx, sub)
}

const redactedValue = "REDACTED"

// LogSink reports submissions through slog. Fields listed in Redact are
// masked before logging.
type LogSink struct {
	Logger *slog.Logger
	Redact []string
}

// NewLogSink builds a LogSink that masks the password.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{
		Logger: logger,
		Redact: []string{schema.FieldPassword},
	}
}

// Accept logs the submitted record at info level.
func (s *LogSink) Accept(ctx context.Context, sub Submission) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	masked := make(map[string]struct{}, len(s.Redact))
	for _, name := range s.Redact {
		masked[name] = struct{}{}
	}

	names := make([]string, 0, len(sub.Record))
	for name := range sub.Record {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		value := sub.Record[name]
		if _, ok := masked[name]; ok {
			value = redactedValue
		}
		attrs = append(attrs, slog.Any(name, value))
	}

	logger.InfoContext(ctx, "form submitted",
		slog.String("id", sub.ID),
		slog.Time("submitted_at", sub.SubmittedAt),
		slog.Group("record", attrs...),
	)
	return nil
}

type discardSink struct{}

func (discardSink) Accept(context.Context, Submission) error { return nil }

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/core/ports"
	"github.com/SscSPs/forexdesk/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Notifier ports.Notifier
	Metrics  ports.MetricsRecorder
	Clock    func() time.Time
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithNotifier sets the sink for user-facing events.
func WithNotifier(n ports.Notifier) Option {
	return func(b *BaseService) {
		b.Notifier = n
	}
}

// WithMetrics sets the business metrics recorder.
func WithMetrics(m ports.MetricsRecorder) Option {
	return func(b *BaseService) {
		b.Metrics = m
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

func newBaseService(opts ...Option) BaseService {
	b := BaseService{}
	for _, opt := range opts {
		opt(&b)
	}
	if b.Notifier == nil {
		b.Notifier = discardNotifier{}
	}
	if b.Metrics == nil {
		b.Metrics = discardMetrics{}
	}
	if b.Clock == nil {
		b.Clock = time.Now
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected business rule.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	return s.Clock().UTC()
}

func (s *BaseService) event(ctx context.Context, kind domain.EventKind, severity domain.Severity, title, message string) domain.Event {
	return domain.Event{
		Kind:       kind,
		Title:      title,
		Message:    message,
		Severity:   severity,
		UserID:     middleware.GetUserIDFromCtx(ctx),
		OccurredAt: s.now(),
	}
}

// Emit delivers a user-facing event.
func (s *BaseService) Emit(ctx context.Context, kind domain.EventKind, severity domain.Severity, title, message string) {
	s.Notifier.Notify(ctx, s.event(ctx, kind, severity, title, message))
}

// EmitAll delivers events collected inside a committed transaction.
func (s *BaseService) EmitAll(ctx context.Context, events []domain.Event) {
	for _, e := range events {
		s.Notifier.Notify(ctx, e)
	}
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, domain.Event) {}

type discardMetrics struct{}

func (discardMetrics) SettlementRecorded(string) {}
func (discardMetrics) TransferTransition(string) {}
func (discardMetrics) ConvergenceIterations(int) {}

// Package notify delivers user-facing events emitted by the services.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/core/ports"
	"github.com/SscSPs/forexdesk/internal/middleware"
)

// EventCounter is the metrics hook called for every delivered event.
type EventCounter interface {
	EventEmitted(kind string, severity string)
}

// LogNotifier writes events to the request logger. A UI layer tails these entries.
type LogNotifier struct {
	counter EventCounter
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier. counter may be nil.
func NewLogNotifier(counter EventCounter) *LogNotifier {
	return &LogNotifier{counter: counter}
}

func (n *LogNotifier) Notify(ctx context.Context, event domain.Event) {
	level := slog.LevelInfo
	switch event.Severity {
	case domain.SeverityWarning:
		level = slog.LevelWarn
	case domain.SeverityDanger:
		level = slog.LevelError
	}
	middleware.GetLoggerFromCtx(ctx).Log(ctx, level, "event",
		slog.String("kind", string(event.Kind)),
		slog.String("title", event.Title),
		slog.String("message", event.Message),
		slog.String("severity", string(event.Severity)),
		slog.String("target_user", event.UserID),
	)
	if n.counter != nil {
		n.counter.EventEmitted(string(event.Kind), string(event.Severity))
	}
}

// Recorder keeps events in memory. Tests use it to assert on emitted notifications.
type Recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

var _ ports.Notifier = (*Recorder)(nil)

func (r *Recorder) Notify(_ context.Context, event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []domain.EventKind {
	events := r.Events()
	kinds := make([]domain.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Multi fans an event out to several notifiers.
type Multi []ports.Notifier

func (m Multi) Notify(ctx context.Context, event domain.Event) {
	for _, n := range m {
		n.Notify(ctx, event)
	}
}

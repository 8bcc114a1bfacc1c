package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) EventEmitted(kind string, severity string) {
	m.Called(kind, severity)
}

func TestLogNotifier_WritesToRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := middleware.WithLogger(context.Background(), logger)

	counter := new(mockCounter)
	counter.On("EventEmitted", "insufficient_balance", "danger").Once()

	n := NewLogNotifier(counter)
	n.Notify(ctx, domain.Event{
		Kind:     domain.EventInsufficientBalance,
		Title:    "Insufficient balance",
		Message:  "desk D1 holds 10.00 USD",
		Severity: domain.SeverityDanger,
	})

	assert.Contains(t, buf.String(), `"kind":"insufficient_balance"`)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	counter.AssertExpectations(t)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Multi{a, b}.Notify(context.Background(), domain.Event{Kind: domain.EventRepeatedLine})

	assert.Equal(t, []domain.EventKind{domain.EventRepeatedLine}, a.Kinds())
	assert.Equal(t, []domain.EventKind{domain.EventRepeatedLine}, b.Kinds())
}

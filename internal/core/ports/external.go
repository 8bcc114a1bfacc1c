package ports

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Note: these are the outbound dependencies of the core that are not storage.

// RateProvider returns the official rate quoting how many units of quote one unit of base buys.
type RateProvider interface {
	LookupRate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

// Notifier delivers user-facing events. Delivery is best effort and never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event)
}

// MetricsRecorder receives business counters from the services.
type MetricsRecorder interface {
	SettlementRecorded(outcome string)
	TransferTransition(transition string)
	ConvergenceIterations(n int)
}

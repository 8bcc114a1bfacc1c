package services

import (
	"github.com/SscSPs/forexdesk/internal/core/ports"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/platform/config"
	"github.com/SscSPs/forexdesk/internal/utils/conversion"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider ports.RateProvider, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	policy := conversion.RatePolicy{
		Margin:       cfg.CommercialMargin,
		MaxDiscount:  cfg.MaxDiscount,
		DiscountStep: cfg.DiscountStep,
	}
	solver := conversion.NewSolver(cfg.DenominationTolerance, cfg.ConvergenceMaxIterations)

	container.Currency = NewCurrencyService(repos.CurrencyRepo, opts...)
	container.Rates = NewRateService(repos.CurrencyRepo, provider, policy, opts...)

	// The ledger is shared: services bind it to their transaction with WithRepository.
	container.Ledger = NewCashLedgerService(repos.CashBalanceRepo, opts...)

	conv := newConversionService(repos, container.Rates, solver, opts...)
	container.Conversion = conv

	container.Desk = NewDeskService(repos.DeskRepo, repos.DeskLinkRepo, opts...)
	container.Session = NewSessionService(repos, opts...)
	container.Reconciliation = NewReconciliationService(repos, container.Ledger, opts...)

	transfers := newTransferService(repos, container.Ledger, cfg.TransferRejectRefundsSender, opts...)
	container.Transfer = transfers
	container.Operation = newOperationService(repos, container.Rates, conv, container.Ledger, transfers, opts...)

	return container
}

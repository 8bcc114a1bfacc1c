package pgsql

import (
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx repositories. Conflicting ledger transactions are
// retried up to maxRetries times.
func NewRepositoryProvider(dbPool *pgxpool.Pool, maxRetries int) portsrepo.RepositoryProvider {
	return newProvider(dbPool, false, &PgxTxManager{Pool: dbPool, MaxRetries: maxRetries})
}

func newProvider(db DBTX, inTx bool, txManager portsrepo.TransactionManager) portsrepo.RepositoryProvider {
	base := BaseRepository{DB: db, inTx: inTx}
	deskRepo := &PgxDeskRepository{BaseRepository: base}
	repos := portsrepo.RepositoryProvider{
		CurrencyRepo:     &PgxCurrencyRepository{BaseRepository: base},
		DeskRepo:         deskRepo,
		DeskLinkRepo:     deskRepo,
		CashBalanceRepo:  &PgxCashBalanceRepository{BaseRepository: base},
		WorkSessionRepo:  &PgxWorkSessionRepository{BaseRepository: base},
		BalanceCheckRepo: &PgxBalanceCheckRepository{BaseRepository: base},
		TransferRepo:     &PgxTransferRepository{BaseRepository: base},
		OperationRepo:    &PgxOperationRepository{BaseRepository: base},
	}
	if bound, ok := txManager.(txBound); ok {
		bound.repos = &repos
		txManager = bound
	}
	repos.TxManager = txManager
	return repos
}

package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
// Inside a transaction every field is bound to that transaction.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	DeskRepo         DeskReader
	DeskLinkRepo     DeskLinkRepositoryFacade
	CashBalanceRepo  CashBalanceRepositoryFacade
	WorkSessionRepo  WorkSessionRepositoryFacade
	BalanceCheckRepo BalanceCheckRepositoryFacade
	TransferRepo     TransferRepositoryFacade
	OperationRepo    OperationRepositoryFacade
	TxManager        TransactionManager
}

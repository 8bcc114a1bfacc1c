// Package memory is an in-process store implementing the repository ports with the same
// transactional contract as the PostgreSQL adapter. It backs development mode and tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
)

type cellKey struct {
	deskID       string
	currencyCode string
}

type state struct {
	currencies  map[string]domain.Currency
	workcenters map[string]domain.Workcenter
	desks       map[string]domain.Desk
	links       map[string]domain.DeskLink
	balances    map[cellKey]domain.CashBalance
	sessions    map[string]domain.WorkSession
	checks      map[string]domain.BalanceCheck
	transfers   map[string]domain.Transfer // lines are kept in lines
	lines       map[string]domain.TransferLine
	operations  map[string]domain.Operation
}

func newState() *state {
	return &state{
		currencies:  map[string]domain.Currency{},
		workcenters: map[string]domain.Workcenter{},
		desks:       map[string]domain.Desk{},
		links:       map[string]domain.DeskLink{},
		balances:    map[cellKey]domain.CashBalance{},
		sessions:    map[string]domain.WorkSession{},
		checks:      map[string]domain.BalanceCheck{},
		transfers:   map[string]domain.Transfer{},
		lines:       map[string]domain.TransferLine{},
		operations:  map[string]domain.Operation{},
	}
}

// clone copies every table. Stored values are never mutated in place, so a shallow copy of
// each map is enough to isolate a transaction.
func (s *state) clone() *state {
	return &state{
		currencies:  maps.Clone(s.currencies),
		workcenters: maps.Clone(s.workcenters),
		desks:       maps.Clone(s.desks),
		links:       maps.Clone(s.links),
		balances:    maps.Clone(s.balances),
		sessions:    maps.Clone(s.sessions),
		checks:      maps.Clone(s.checks),
		transfers:   maps.Clone(s.transfers),
		lines:       maps.Clone(s.lines),
		operations:  maps.Clone(s.operations),
	}
}

// Store serializes every transaction behind a single mutex.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// baseRepository gives repositories access to either the committed state or a transaction's copy.
type baseRepository struct {
	store *Store
	tx    *state
}

func (b baseRepository) view(fn func(*state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}

// WithinTransaction runs fn against a private copy of the state and publishes it only when fn
// succeeds. fn must not use repositories other than the ones it receives.
func (b baseRepository) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	if b.tx != nil {
		return fn(ctx, b.store.provider(b.tx))
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	working := b.store.st.clone()
	if err := fn(ctx, b.store.provider(working)); err != nil {
		return err
	}
	b.store.st = working
	return nil
}

func (s *Store) provider(tx *state) portsrepo.RepositoryProvider {
	base := baseRepository{store: s, tx: tx}
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     &currencyRepository{base},
		DeskRepo:         &deskRepository{base},
		DeskLinkRepo:     &deskRepository{base},
		CashBalanceRepo:  &cashBalanceRepository{base},
		WorkSessionRepo:  &workSessionRepository{base},
		BalanceCheckRepo: &balanceCheckRepository{base},
		TransferRepo:     &transferRepository{base},
		OperationRepo:    &operationRepository{base},
		TxManager:        base,
	}
}

// NewRepositoryProvider returns repositories reading and writing the committed state.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return store.provider(nil)
}

package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/forexdesk/internal/adapters/notify"
	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/forexdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/core/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/SscSPs/forexdesk/internal/platform/config"
	"github.com/SscSPs/forexdesk/internal/repositories/database/memory"
	"github.com/SscSPs/forexdesk/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) LookupRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

const pairingCode = "1234"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DeskWorkflowTestSuite runs the services against the in-memory store.
type DeskWorkflowTestSuite struct {
	suite.Suite
	ctx      context.Context
	repos    portsrepo.RepositoryProvider
	rates    *MockRateProvider
	recorder *notify.Recorder
	svc      *portssvc.ServiceContainer
}

func (suite *DeskWorkflowTestSuite) SetupTest() {
	suite.ctx = context.Background()
	store := memory.NewStore()
	suite.repos = memory.NewRepositoryProvider(store)

	hash, err := utils.HashPairingCode(pairingCode)
	suite.Require().NoError(err)
	store.AddWorkcenter(domain.Workcenter{WorkcenterID: "W1", Name: "Airport", AcceptedCurrencies: []string{"EUR", "USD"}})
	store.AddWorkcenter(domain.Workcenter{WorkcenterID: "W2", Name: "Station", AcceptedCurrencies: []string{"EUR"}})
	store.AddDesk(domain.Desk{DeskID: "D1", WorkcenterID: "W1", Name: "Desk 1", PairingCodeHash: hash})
	store.AddDesk(domain.Desk{DeskID: "D2", WorkcenterID: "W1", Name: "Desk 2", PairingCodeHash: hash})
	store.AddDesk(domain.Desk{DeskID: "D3", WorkcenterID: "W2", Name: "Desk 3", PairingCodeHash: hash})

	suite.Require().NoError(suite.repos.CurrencyRepo.SaveCurrency(suite.ctx, currency("EUR", true, "0.01", "0.05", "0.1", "0.5", "1", "5", "10", "50")))
	suite.Require().NoError(suite.repos.CurrencyRepo.SaveCurrency(suite.ctx, currency("USD", false, "1", "5", "10", "20")))

	now := time.Now()
	for _, desk := range []string{"D1", "D2", "D3"} {
		for _, code := range []string{"EUR", "USD"} {
			_, err := suite.repos.CashBalanceRepo.SetBalance(suite.ctx, desk, code, dec("1000"), now)
			suite.Require().NoError(err)
		}
	}

	suite.rates = new(MockRateProvider)
	suite.rates.On("LookupRate", mock.Anything, "EUR", "USD").Return(dec("1.10"), nil).Maybe()
	suite.recorder = &notify.Recorder{}

	cfg := &config.Config{
		CommercialMargin:            dec("1.4"),
		MaxDiscount:                 95,
		DiscountStep:                5,
		DenominationTolerance:       dec("0.02"),
		ConvergenceMaxIterations:    50,
		TransferRejectRefundsSender: true,
	}
	suite.svc = services.NewServiceContainer(cfg, suite.repos, suite.rates, services.WithNotifier(suite.recorder))
}

func currency(code string, isBase bool, values ...string) domain.Currency {
	c := domain.Currency{CurrencyCode: code, Name: code, RateSymbol: code, IsBase: isBase, IsActive: true}
	for _, v := range values {
		c.Denominations = append(c.Denominations, domain.Denomination{CurrencyCode: code, Kind: domain.DenominationBill, Value: dec(v)})
	}
	return c
}

// --- helpers ---

func (suite *DeskWorkflowTestSuite) checkin(userID, deskID string) *domain.WorkSession {
	_, err := suite.svc.Desk.LinkDesk(suite.ctx, userID, deskID, pairingCode)
	suite.Require().NoError(err)
	ws, err := suite.svc.Session.Checkin(suite.ctx, userID)
	suite.Require().NoError(err)
	return ws
}

// reconcile counts every currency at its system balance and completes the check.
func (suite *DeskWorkflowTestSuite) reconcile(userID, sessionID string) {
	checks, err := suite.svc.Reconciliation.Start(suite.ctx, userID, sessionID)
	suite.Require().NoError(err)
	for _, c := range checks {
		_, err := suite.svc.Reconciliation.RecordPhysicalCount(suite.ctx, userID, sessionID, c.CurrencyCode, c.SystemBalance)
		suite.Require().NoError(err)
	}
	_, err = suite.svc.Reconciliation.SearchDifference(suite.ctx, userID, sessionID)
	suite.Require().NoError(err)
}

func (suite *DeskWorkflowTestSuite) openDesk(userID, deskID string) domain.SessionContext {
	ws := suite.checkin(userID, deskID)
	suite.reconcile(userID, ws.SessionID)
	sc, err := suite.svc.Session.ResolveContext(suite.ctx, userID, false)
	suite.Require().NoError(err)
	return *sc
}

func (suite *DeskWorkflowTestSuite) balance(deskID, code string) decimal.Decimal {
	bal, err := suite.svc.Ledger.GetBalance(suite.ctx, deskID, code)
	suite.Require().NoError(err)
	return bal.Balance
}

func (suite *DeskWorkflowTestSuite) sendUSD(sc domain.SessionContext, receiverDeskID, amount string) (*domain.Transfer, error) {
	return suite.svc.Transfer.Create(suite.ctx, sc, dto.CreateTransferRequest{
		Lines: []dto.TransferLineRequest{{ReceiverDeskID: receiverDeskID, CurrencyCode: "USD", Amount: dec(amount)}},
	})
}

func eurToUSD(amount string) dto.SettleLineRequest {
	return dto.SettleLineRequest{ConversionLineRequest: dto.ConversionLineRequest{
		SourceCurrency: "EUR",
		TargetCurrency: "USD",
		Anchor:         string(domain.LegReceived),
		Amount:         dec(amount),
	}}
}

// --- sessions ---

func (suite *DeskWorkflowTestSuite) TestCheckin_OpeningClaimAndSecondaryDesk() {
	opening := suite.checkin("alice", "D1")
	suite.True(opening.IsOpening)
	suite.Equal("D1", opening.OpeningDeskID)

	_, err := suite.svc.Desk.LinkDesk(suite.ctx, "bob", "D1", pairingCode)
	suite.Require().NoError(err)
	_, err = suite.svc.Session.Checkin(suite.ctx, "bob")
	suite.ErrorIs(err, apperrors.ErrDeskClaimed)

	secondary := suite.checkin("alice", "D2")
	suite.False(secondary.IsOpening)
	suite.Equal("D1", secondary.OpeningDeskID)

	_, err = suite.svc.Session.Checkin(suite.ctx, "alice")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *DeskWorkflowTestSuite) TestLinkDesk_WrongCodeAndRelink() {
	_, err := suite.svc.Desk.LinkDesk(suite.ctx, "alice", "D1", "0000")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.svc.Desk.LinkDesk(suite.ctx, "alice", "D1", pairingCode)
	suite.Require().NoError(err)
	_, err = suite.svc.Desk.LinkDesk(suite.ctx, "alice", "D1", pairingCode)
	suite.Require().NoError(err)
	suite.Contains(suite.recorder.Kinds(), domain.EventDeskAlreadyLinked)
}

func (suite *DeskWorkflowTestSuite) TestCheckout_SecondaryDeskClosesImmediately() {
	suite.openDesk("alice", "D1")
	suite.checkin("alice", "D2")

	checkout, err := suite.svc.Session.Checkout(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal(domain.SessionClosed, checkout.Status)

	open, err := suite.svc.Session.ListOpenSessions(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Require().Len(open, 1)
	suite.Equal("D1", open[0].DeskID)
}

func (suite *DeskWorkflowTestSuite) TestCheckout_OpeningDeskWaitsForBalanceCheck() {
	sc := suite.openDesk("alice", "D1")

	checkout, err := suite.svc.Session.Checkout(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal(domain.SessionOpen, checkout.Status)
	suite.True(checkout.IsOpening)

	// The desk is still held and no money moves while the checkout is pending.
	_, err = suite.svc.Desk.LinkDesk(suite.ctx, "bob", "D1", pairingCode)
	suite.Require().NoError(err)
	_, err = suite.svc.Session.Checkin(suite.ctx, "bob")
	suite.ErrorIs(err, apperrors.ErrDeskClaimed)
	_, err = suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{eurToUSD("100")}})
	suite.ErrorIs(err, apperrors.ErrNotReconciled)
	_, err = suite.svc.Session.Checkout(suite.ctx, "alice")
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	suite.reconcile("alice", checkout.SessionID)

	open, err := suite.svc.Session.ListOpenSessions(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Empty(open)

	bobSession, err := suite.svc.Session.Checkin(suite.ctx, "bob")
	suite.Require().NoError(err)
	suite.True(bobSession.IsOpening)
}

// --- reconciliation ---

func (suite *DeskWorkflowTestSuite) TestReconciliation_ConfirmRecordsShrinkage() {
	ws := suite.checkin("alice", "D1")
	_, err := suite.svc.Reconciliation.Start(suite.ctx, "alice", ws.SessionID)
	suite.Require().NoError(err)

	_, err = suite.svc.Reconciliation.RecordPhysicalCount(suite.ctx, "alice", ws.SessionID, "EUR", dec("990"))
	suite.Require().NoError(err)
	_, err = suite.svc.Reconciliation.RecordPhysicalCount(suite.ctx, "alice", ws.SessionID, "USD", dec("1000"))
	suite.Require().NoError(err)

	checks, err := suite.svc.Reconciliation.SearchDifference(suite.ctx, "alice", ws.SessionID)
	suite.Require().NoError(err)
	for _, c := range checks {
		if c.CurrencyCode == "EUR" {
			suite.False(c.Confirmed)
			suite.True(dec("-10").Equal(c.Difference))
		} else {
			suite.True(c.Confirmed)
		}
	}

	checks, err = suite.svc.Reconciliation.Confirm(suite.ctx, "alice", ws.SessionID)
	suite.Require().NoError(err)
	for _, c := range checks {
		suite.True(c.Confirmed)
		if c.CurrencyCode == "EUR" {
			suite.True(dec("-10").Equal(c.RecordedShrinkage))
			suite.True(c.Difference.IsZero())
			suite.False(c.Closed)

			noted, err := suite.svc.Reconciliation.AttachNote(suite.ctx, "alice", c.CheckID, "miscounted float")
			suite.Require().NoError(err)
			suite.True(noted.Closed)
			_, err = suite.svc.Reconciliation.AttachNote(suite.ctx, "bob", c.CheckID, "not mine")
			suite.ErrorIs(err, apperrors.ErrForbidden)
		}
	}

	suite.True(dec("990").Equal(suite.balance("D1", "EUR")))
	suite.Contains(suite.recorder.Kinds(), domain.EventShrinkageRecorded)

	session, err := suite.svc.Session.GetSession(suite.ctx, ws.SessionID)
	suite.Require().NoError(err)
	suite.True(session.Reconciled())
}

func (suite *DeskWorkflowTestSuite) TestReconciliation_Guards() {
	ws := suite.checkin("alice", "D1")

	_, err := suite.svc.Reconciliation.RecordPhysicalCount(suite.ctx, "alice", ws.SessionID, "EUR", dec("1"))
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	_, err = suite.svc.Reconciliation.Start(suite.ctx, "bob", ws.SessionID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.svc.Reconciliation.Start(suite.ctx, "alice", ws.SessionID)
	suite.Require().NoError(err)
	_, err = suite.svc.Reconciliation.Start(suite.ctx, "alice", ws.SessionID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	_, err = suite.svc.Reconciliation.RecordPhysicalCount(suite.ctx, "alice", ws.SessionID, "EUR", dec("-1"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	secondary := suite.checkin("alice", "D2")
	_, err = suite.svc.Reconciliation.Start(suite.ctx, "alice", secondary.SessionID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- settlement ---

func (suite *DeskWorkflowTestSuite) TestSettle_RequiresReconciledOpeningSession() {
	suite.checkin("alice", "D1")
	sc, err := suite.svc.Session.ResolveContext(suite.ctx, "alice", false)
	suite.Require().NoError(err)

	_, err = suite.svc.Operation.Settle(suite.ctx, *sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{eurToUSD("100")}})
	suite.ErrorIs(err, apperrors.ErrNotReconciled)
}

func (suite *DeskWorkflowTestSuite) TestSettle_ConservesBalances() {
	sc := suite.openDesk("alice", "D1")

	op, err := suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{eurToUSD("100")}})
	suite.Require().NoError(err)
	suite.Require().Len(op.Lines, 1)
	line := op.Lines[0]

	suite.True(dec("1000").Add(line.AmountReceived).Equal(suite.balance("D1", "EUR")))
	suite.True(dec("1000").Sub(line.AmountDelivered).Equal(suite.balance("D1", "USD")))
	suite.True(line.AmountDelivered.Mod(dec("1")).IsZero(), "USD is paid in whole notes")

	ops, err := suite.svc.Operation.ListBySession(suite.ctx, sc.SessionID)
	suite.Require().NoError(err)
	suite.Len(ops, 1)
}

func (suite *DeskWorkflowTestSuite) TestSettle_SecondaryDeskMovesOpeningLedger() {
	suite.openDesk("alice", "D1")
	suite.checkin("alice", "D2")
	sc, err := suite.svc.Session.ResolveContext(suite.ctx, "alice", false)
	suite.Require().NoError(err)
	suite.Equal("D2", sc.DeskID)
	suite.Equal("D1", sc.OpeningDeskID)

	op, err := suite.svc.Operation.Settle(suite.ctx, *sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{eurToUSD("100")}})
	suite.Require().NoError(err)
	suite.Equal("D1", op.DeskID)
	suite.Equal("D2", op.CurrentDeskID)
	suite.True(dec("1000").Equal(suite.balance("D2", "USD")))
}

func (suite *DeskWorkflowTestSuite) TestSettle_CardPaymentLeavesSourceUntouched() {
	sc := suite.openDesk("alice", "D1")
	line := eurToUSD("100")
	line.PaymentType = string(domain.PaymentCard)

	_, err := suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{line}})
	suite.Require().NoError(err)
	suite.True(dec("1000").Equal(suite.balance("D1", "EUR")))
}

func (suite *DeskWorkflowTestSuite) TestSettle_RepeatedLineRejected() {
	sc := suite.openDesk("alice", "D1")

	_, err := suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{
		Lines: []dto.SettleLineRequest{eurToUSD("100"), eurToUSD("50")},
	})
	suite.ErrorIs(err, apperrors.ErrRepeatedLine)
	suite.Contains(suite.recorder.Kinds(), domain.EventRepeatedLine)
	suite.True(dec("1000").Equal(suite.balance("D1", "EUR")))
}

func (suite *DeskWorkflowTestSuite) TestSettle_InsufficientBalanceRollsBack() {
	sc := suite.openDesk("alice", "D1")

	_, err := suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{eurToUSD("5000")}})
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.True(dec("1000").Equal(suite.balance("D1", "EUR")))
	suite.True(dec("1000").Equal(suite.balance("D1", "USD")))
}

func (suite *DeskWorkflowTestSuite) TestSettle_ConcurrentDebitsOfOneCell() {
	sc := suite.openDesk("alice", "D1")
	const workers = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ops       []*domain.Operation
		errs      []error
		done      = make(chan struct{})
		negatives int
	)

	// Watch the cell while settlements run.
	sampled := make(chan struct{})
	go func() {
		defer close(sampled)
		for {
			select {
			case <-done:
				return
			default:
			}
			if bal, err := suite.svc.Ledger.GetBalance(suite.ctx, "D1", "USD"); err == nil && bal.Balance.IsNegative() {
				negatives++
			}
		}
	}()

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			op, err := suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{eurToUSD("100")}})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			ops = append(ops, op)
		}()
	}
	close(start)
	wg.Wait()
	close(done)
	<-sampled

	suite.Require().NotEmpty(ops)
	delivered := ops[0].Lines[0].AmountDelivered
	received := ops[0].Lines[0].AmountReceived
	for _, op := range ops {
		suite.True(delivered.Equal(op.Lines[0].AmountDelivered))
	}

	expected := int(dec("1000").Div(delivered).Floor().IntPart())
	suite.Len(ops, expected)
	suite.Len(errs, workers-expected)
	for _, err := range errs {
		suite.True(errors.Is(err, apperrors.ErrInsufficientBalance), "unexpected error: %v", err)
	}

	n := decimal.NewFromInt(int64(len(ops)))
	usd := suite.balance("D1", "USD")
	suite.True(dec("1000").Sub(delivered.Mul(n)).Equal(usd), "USD balance %s", usd)
	suite.True(dec("1000").Add(received.Mul(n)).Equal(suite.balance("D1", "EUR")))
	suite.False(usd.IsNegative())
	suite.True(usd.LessThan(delivered))
	suite.Zero(negatives)
}

func (suite *DeskWorkflowTestSuite) TestSettle_ExpectedAmountMismatch() {
	sc := suite.openDesk("alice", "D1")
	line := eurToUSD("100")
	wrong := dec("1")
	line.ExpectedDelivered = &wrong

	_, err := suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{Lines: []dto.SettleLineRequest{line}})
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DeskWorkflowTestSuite) TestSettle_WithTransfer() {
	sc := suite.openDesk("alice", "D1")
	suite.openDesk("bob", "D2")

	op, err := suite.svc.Operation.Settle(suite.ctx, sc, dto.SettleOperationRequest{
		Lines: []dto.SettleLineRequest{eurToUSD("100")},
		Transfer: &dto.CreateTransferRequest{Lines: []dto.TransferLineRequest{
			{ReceiverDeskID: "D2", CurrencyCode: "EUR", Amount: dec("50")},
		}},
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(op.TransferID)

	transfer, err := suite.svc.Transfer.GetTransfer(suite.ctx, *op.TransferID)
	suite.Require().NoError(err)
	suite.Equal(domain.TransferOperation, transfer.Origin)
	suite.Equal(op.OperationID, *transfer.OperationID)
	suite.True(dec("950").Add(op.Lines[0].AmountReceived).Equal(suite.balance("D1", "EUR")))
}

// --- transfers ---

func (suite *DeskWorkflowTestSuite) TestTransfer_DestinationNotReconciled() {
	sc := suite.openDesk("alice", "D1")

	_, err := suite.sendUSD(sc, "D2", "100")
	suite.ErrorIs(err, apperrors.ErrDestinationNotReconciled)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.True(dec("1000").Equal(suite.balance("D1", "USD")))
}

func (suite *DeskWorkflowTestSuite) TestTransfer_ReceiverWorkcenterMustAcceptCurrency() {
	sc := suite.openDesk("alice", "D1")
	suite.openDesk("bob", "D3")

	_, err := suite.sendUSD(sc, "D3", "100")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DeskWorkflowTestSuite) TestTransfer_ReceiveCompletesMove() {
	alice := suite.openDesk("alice", "D1")
	bob := suite.openDesk("bob", "D2")

	transfer, err := suite.sendUSD(alice, "D2", "100")
	suite.Require().NoError(err)
	line := transfer.Lines[0]
	suite.Equal("bob", line.SentTo)
	suite.True(dec("900").Equal(suite.balance("D1", "USD")))
	suite.True(dec("1000").Equal(suite.balance("D2", "USD")), "in transit until received")

	_, err = suite.svc.Transfer.Receive(suite.ctx, alice, line.LineID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	received, err := suite.svc.Transfer.Receive(suite.ctx, bob, line.LineID)
	suite.Require().NoError(err)
	suite.Equal(domain.DestinationReceived, received.StatusDestination)
	suite.NotNil(received.DestinationTime)
	suite.True(dec("1100").Equal(suite.balance("D2", "USD")))

	_, err = suite.svc.Transfer.Cancel(suite.ctx, alice, line.LineID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)

	lines, err := suite.svc.Transfer.ListLines(suite.ctx, "bob")
	suite.Require().NoError(err)
	suite.Len(lines, 1)
}

func (suite *DeskWorkflowTestSuite) TestTransfer_CancelRefundsSender() {
	alice := suite.openDesk("alice", "D1")
	bob := suite.openDesk("bob", "D2")
	transfer, err := suite.sendUSD(alice, "D2", "100")
	suite.Require().NoError(err)
	lineID := transfer.Lines[0].LineID

	_, err = suite.svc.Transfer.Cancel(suite.ctx, bob, lineID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	cancelled, err := suite.svc.Transfer.Cancel(suite.ctx, alice, lineID)
	suite.Require().NoError(err)
	suite.Equal(domain.SourceCancelled, cancelled.StatusSource)
	suite.True(cancelled.SenderRefunded)
	suite.True(dec("1000").Equal(suite.balance("D1", "USD")))
}

func (suite *DeskWorkflowTestSuite) TestTransfer_RejectRefundsSender() {
	alice := suite.openDesk("alice", "D1")
	bob := suite.openDesk("bob", "D2")
	transfer, err := suite.sendUSD(alice, "D2", "100")
	suite.Require().NoError(err)

	rejected, err := suite.svc.Transfer.Reject(suite.ctx, bob, transfer.Lines[0].LineID)
	suite.Require().NoError(err)
	suite.Equal(domain.DestinationCancelled, rejected.StatusDestination)
	suite.True(rejected.SenderRefunded)
	suite.True(dec("1000").Equal(suite.balance("D1", "USD")))
	suite.True(dec("1000").Equal(suite.balance("D2", "USD")))
}

func (suite *DeskWorkflowTestSuite) TestTransfer_RejectWaitsForSenderReconciliation() {
	alice := suite.openDesk("alice", "D1")
	bob := suite.openDesk("bob", "D2")
	transfer, err := suite.sendUSD(alice, "D2", "100")
	suite.Require().NoError(err)
	lineID := transfer.Lines[0].LineID
	suite.True(dec("900").Equal(suite.balance("D1", "USD")))

	checkout, err := suite.svc.Session.Checkout(suite.ctx, "alice")
	suite.Require().NoError(err)
	checks, err := suite.svc.Reconciliation.Start(suite.ctx, "alice", checkout.SessionID)
	suite.Require().NoError(err)
	for _, c := range checks {
		if c.CurrencyCode == "USD" {
			suite.True(dec("900").Equal(c.SystemBalance))
		}
	}

	_, err = suite.svc.Transfer.Reject(suite.ctx, bob, lineID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.True(dec("900").Equal(suite.balance("D1", "USD")), "the ledger must not move while D1 reconciles")

	for _, c := range checks {
		_, err := suite.svc.Reconciliation.RecordPhysicalCount(suite.ctx, "alice", checkout.SessionID, c.CurrencyCode, c.SystemBalance)
		suite.Require().NoError(err)
	}
	_, err = suite.svc.Reconciliation.SearchDifference(suite.ctx, "alice", checkout.SessionID)
	suite.Require().NoError(err)
	suite.True(dec("900").Equal(suite.balance("D1", "USD")))

	// D1 is closed now; the line is still pending and the refund waits for the next opening.
	_, err = suite.svc.Transfer.Reject(suite.ctx, bob, lineID)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	line, err := suite.svc.Transfer.GetTransfer(suite.ctx, transfer.TransferID)
	suite.Require().NoError(err)
	suite.True(line.Lines[0].IsPending())

	suite.openDesk("carol", "D1")
	rejected, err := suite.svc.Transfer.Reject(suite.ctx, bob, lineID)
	suite.Require().NoError(err)
	suite.True(rejected.SenderRefunded)
	suite.True(dec("1000").Equal(suite.balance("D1", "USD")))
}

func (suite *DeskWorkflowTestSuite) TestTransfer_RedirectRequiresAdmin() {
	alice := suite.openDesk("alice", "D1")
	suite.openDesk("bob", "D2")
	suite.openDesk("carol", "D3")
	transfer, err := suite.svc.Transfer.Create(suite.ctx, alice, dto.CreateTransferRequest{
		Lines: []dto.TransferLineRequest{{ReceiverDeskID: "D2", CurrencyCode: "EUR", Amount: dec("10")}},
	})
	suite.Require().NoError(err)
	lineID := transfer.Lines[0].LineID

	_, err = suite.svc.Transfer.Redirect(suite.ctx, alice, lineID, "D3")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	admin := alice
	admin.IsAdmin = true
	redirected, err := suite.svc.Transfer.Redirect(suite.ctx, admin, lineID, "D3")
	suite.Require().NoError(err)
	suite.Equal("D3", redirected.ReceiverDeskID)
	suite.Equal("carol", redirected.SentTo)
	suite.True(redirected.IsPending())
}

// --- quotes ---

func (suite *DeskWorkflowTestSuite) TestQuote_IdenticalCurrencies() {
	req := eurToUSD("100").ToDomain()
	req.TargetCurrency = "EUR"

	_, err := suite.svc.Conversion.Quote(suite.ctx, req, "")
	suite.ErrorIs(err, apperrors.ErrIdenticalCurrencies)
	suite.Contains(suite.recorder.Kinds(), domain.EventIdenticalCurrencies)
}

func (suite *DeskWorkflowTestSuite) TestQuote_AttachesAvailability() {
	res, err := suite.svc.Conversion.Quote(suite.ctx, eurToUSD("100").ToDomain(), "D1")
	suite.Require().NoError(err)
	suite.Require().NotNil(res.Availability)
	suite.True(res.Availability.Available)
	suite.True(dec("1000").Equal(res.Availability.Balance))
}

func TestDeskWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(DeskWorkflowTestSuite))
}

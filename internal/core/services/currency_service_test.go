package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/forexdesk/internal/apperrors"
	"github.com/SscSPs/forexdesk/internal/core/domain"
	portssvc "github.com/SscSPs/forexdesk/internal/core/ports/services"
	"github.com/SscSPs/forexdesk/internal/core/services"
	"github.com/SscSPs/forexdesk/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func denominations(values ...string) []dto.DenominationRequest {
	out := make([]dto.DenominationRequest, len(values))
	for i, v := range values {
		out[i] = dto.DenominationRequest{Kind: "bill", Value: decimal.RequireFromString(v)}
	}
	return out
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "USD",
		Name:          "US Dollar",
		RateSymbol:    "USD",
		Denominations: denominations("1", "5", "10", "20"),
	}

	suite.mockRepo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "USD" && c.IsActive && len(c.Denominations) == 4 && c.CreatedBy == creatorUserID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal("USD", currency.CurrencyCode)
	suite.Equal(creatorUserID, currency.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "FindBaseCurrency", mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_NoDenominations() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{CurrencyCode: "USD", Name: "US Dollar", RateSymbol: "USD"}

	currency, err := suite.service.CreateCurrency(ctx, req, "admin")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNoDenominations)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_DuplicateDenomination() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "USD",
		Name:          "US Dollar",
		RateSymbol:    "USD",
		Denominations: denominations("5", "5.00"),
	}

	_, err := suite.service.CreateCurrency(ctx, req, "admin")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SecondBaseRejected() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "GBP",
		Name:          "Pound",
		RateSymbol:    "GBP",
		IsBase:        true,
		Denominations: denominations("5", "10"),
	}
	suite.mockRepo.On("FindBaseCurrency", ctx).Return(&domain.Currency{CurrencyCode: "EUR", IsBase: true}, nil).Once()

	_, err := suite.service.CreateCurrency(ctx, req, "admin")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_FirstBaseAccepted() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{
		CurrencyCode:  "EUR",
		Name:          "Euro",
		RateSymbol:    "EUR",
		IsBase:        true,
		Denominations: denominations("0.5", "1", "5"),
	}
	suite.mockRepo.On("FindBaseCurrency", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, req, "admin")

	suite.Require().NoError(err)
	suite.True(currency.IsBase)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "XXX")

	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_EmptyIsNotNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrencies", ctx).Return(nil, nil).Once()

	currencies, err := suite.service.ListCurrencies(ctx)

	suite.Require().NoError(err)
	suite.NotNil(currencies)
	suite.Empty(currencies)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}

package services

import (
	"context"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// GetBaseCurrency retrieves the single base currency.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency with its denomination catalog.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// RateSvc prices base-anchored currency pairs.
type RateSvc interface {
	// GetRates returns buy, sell and base rates for the pair at the given discount tier.
	GetRates(ctx context.Context, sourceCode, targetCode string, discount int) (*domain.RateQuote, error)
}

// ConversionSvc resolves conversion requests into payable amounts.
type ConversionSvc interface {
	// Quote resolves req. When deskID is not empty the result carries an advisory availability
	// snapshot of that desk's balance in the target currency.
	Quote(ctx context.Context, req domain.ConversionRequest, deskID string) (*domain.ConversionResult, error)
}

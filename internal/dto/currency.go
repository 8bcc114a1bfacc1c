package dto

import (
	"time"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DenominationRequest is one accepted face value.
type DenominationRequest struct {
	Kind  string          `json:"kind" binding:"required,oneof=bill coin"`
	Value decimal.Decimal `json:"value"`
}

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string                `json:"currencyCode" binding:"required,uppercase,len=3"`
	Name          string                `json:"name" binding:"required"`
	RateSymbol    string                `json:"rateSymbol" binding:"required"`
	IsBase        bool                  `json:"isBase"`
	Denominations []DenominationRequest `json:"denominations" binding:"required,min=1,dive"`
}

// DenominationResponse defines the data returned for a denomination.
type DenominationResponse struct {
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string                 `json:"currencyCode"`
	Name          string                 `json:"name"`
	RateSymbol    string                 `json:"rateSymbol"`
	IsBase        bool                   `json:"isBase"`
	IsActive      bool                   `json:"isActive"`
	Denominations []DenominationResponse `json:"denominations"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	denoms := make([]DenominationResponse, len(curr.Denominations))
	for i, d := range curr.Denominations {
		denoms[i] = DenominationResponse{Kind: string(d.Kind), Value: d.Value}
	}
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Name:          curr.Name,
		RateSymbol:    curr.RateSymbol,
		IsBase:        curr.IsBase,
		IsActive:      curr.IsActive,
		Denominations: denoms,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}

// RateQuoteResponse defines the data returned for a priced pair.
type RateQuoteResponse struct {
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Discount       int             `json:"discount"`
	BuyRate        decimal.Decimal `json:"buyRate"`
	SellRate       decimal.Decimal `json:"sellRate"`
	BaseRate       decimal.Decimal `json:"baseRate"`
}

// ToRateQuoteResponse converts a domain.RateQuote to its DTO.
func ToRateQuoteResponse(q *domain.RateQuote) RateQuoteResponse {
	return RateQuoteResponse{
		SourceCurrency: q.SourceCurrency,
		TargetCurrency: q.TargetCurrency,
		Discount:       q.Discount,
		BuyRate:        q.BuyRate,
		SellRate:       q.SellRate,
		BaseRate:       q.BaseRate,
	}
}

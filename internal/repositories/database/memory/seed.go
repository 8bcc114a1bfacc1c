package memory

import (
	"fmt"
	"time"

	"github.com/SscSPs/forexdesk/internal/core/domain"
	"github.com/SscSPs/forexdesk/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type seedDenomination struct {
	Kind  string `mapstructure:"kind"`
	Value string `mapstructure:"value"`
}

type seedCurrency struct {
	Code          string             `mapstructure:"code"`
	Name          string             `mapstructure:"name"`
	RateSymbol    string             `mapstructure:"rate_symbol"`
	IsBase        bool               `mapstructure:"is_base"`
	Inactive      bool               `mapstructure:"inactive"`
	Denominations []seedDenomination `mapstructure:"denominations"`
}

type seedWorkcenter struct {
	ID         string   `mapstructure:"id"`
	Name       string   `mapstructure:"name"`
	Currencies []string `mapstructure:"currencies"`
}

type seedDesk struct {
	ID          string `mapstructure:"id"`
	Workcenter  string `mapstructure:"workcenter"`
	Name        string `mapstructure:"name"`
	PairingCode string `mapstructure:"pairing_code"`
}

type seedBalance struct {
	Desk     string `mapstructure:"desk"`
	Currency string `mapstructure:"currency"`
	Amount   string `mapstructure:"amount"`
}

// Seed is the fixture format accepted by LoadSeedFile.
type Seed struct {
	Currencies  []seedCurrency   `mapstructure:"currencies"`
	Workcenters []seedWorkcenter `mapstructure:"workcenters"`
	Desks       []seedDesk       `mapstructure:"desks"`
	Balances    []seedBalance    `mapstructure:"balances"`
}

// LoadSeedFile reads a YAML (or any viper-supported format) fixture into the store.
func (s *Store) LoadSeedFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seed Seed
	if err := v.Unmarshal(&seed); err != nil {
		return fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return s.ApplySeed(seed)
}

// ApplySeed loads currencies, workcenters, desks and opening balances.
func (s *Store) ApplySeed(seed Seed) error {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.st.clone()

	for _, sc := range seed.Currencies {
		c := domain.Currency{
			CurrencyCode: sc.Code,
			Name:         sc.Name,
			RateSymbol:   sc.RateSymbol,
			IsBase:       sc.IsBase,
			IsActive:     !sc.Inactive,
			AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: "seed", LastUpdatedAt: now, LastUpdatedBy: "seed"},
		}
		if c.RateSymbol == "" {
			c.RateSymbol = c.CurrencyCode
		}
		for _, sd := range sc.Denominations {
			value, err := decimal.NewFromString(sd.Value)
			if err != nil || !value.IsPositive() {
				return fmt.Errorf("invalid denomination %q for %s", sd.Value, sc.Code)
			}
			kind := domain.DenominationKind(sd.Kind)
			if kind == "" {
				kind = domain.DenominationBill
			}
			c.Denominations = append(c.Denominations, domain.Denomination{CurrencyCode: c.CurrencyCode, Kind: kind, Value: value})
		}
		working.currencies[c.CurrencyCode] = c
	}

	for _, sw := range seed.Workcenters {
		working.workcenters[sw.ID] = domain.Workcenter{WorkcenterID: sw.ID, Name: sw.Name, AcceptedCurrencies: sw.Currencies}
	}

	for _, sd := range seed.Desks {
		if _, ok := working.workcenters[sd.Workcenter]; !ok {
			return fmt.Errorf("desk %s references unknown workcenter %s", sd.ID, sd.Workcenter)
		}
		hash, err := utils.HashPairingCode(sd.PairingCode)
		if err != nil {
			return fmt.Errorf("failed to hash pairing code for desk %s: %w", sd.ID, err)
		}
		working.desks[sd.ID] = domain.Desk{DeskID: sd.ID, WorkcenterID: sd.Workcenter, Name: sd.Name, PairingCodeHash: hash}
	}

	for _, sb := range seed.Balances {
		amount, err := decimal.NewFromString(sb.Amount)
		if err != nil || amount.IsNegative() {
			return fmt.Errorf("invalid opening balance %q for desk %s", sb.Amount, sb.Desk)
		}
		working.balances[cellKey{sb.Desk, sb.Currency}] = domain.CashBalance{
			DeskID: sb.Desk, CurrencyCode: sb.Currency, Balance: amount.Round(2), LastUpdatedAt: now,
		}
	}

	s.st = working
	return nil
}

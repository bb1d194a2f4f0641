package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/efreitasn/stocksim/internal/domain"
)

var seedSymbolRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)

// Seed is the initial instrument set and demo accounts, converted to
// domain values (prices and balances in cents).
type Seed struct {
	Instruments []domain.Instrument
	Accounts    []domain.Account
}

// seedFile is the YAML shape of a seed file.
type seedFile struct {
	Instruments []struct {
		Symbol    string  `yaml:"symbol"`
		BasePrice float64 `yaml:"base_price"`
	} `yaml:"instruments"`
	Accounts []struct {
		UserID  string  `yaml:"user_id"`
		Balance float64 `yaml:"balance"`
	} `yaml:"accounts"`
}

// DefaultSeed returns the built-in seed set used when no seed file is
// configured: four instruments and one funded demo account.
func DefaultSeed() *Seed {
	now := time.Now().UTC()
	return &Seed{
		Instruments: []domain.Instrument{
			{Symbol: "TCS", BasePrice: 320000, CurrentPrice: 320000},
			{Symbol: "RELIANCE", BasePrice: 280000, CurrentPrice: 280000},
			{Symbol: "INFY", BasePrice: 150000, CurrentPrice: 150000},
			{Symbol: "HDFC", BasePrice: 165000, CurrentPrice: 165000},
		},
		Accounts: []domain.Account{
			{UserID: "demo", Balance: 1000000, CreatedAt: now},
		},
	}
}

// LoadSeed parses and validates a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var raw seedFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	if len(raw.Instruments) == 0 {
		return nil, fmt.Errorf("seed file must define at least one instrument")
	}

	seed := &Seed{}
	now := time.Now().UTC()

	seenSymbols := make(map[string]bool, len(raw.Instruments))
	for _, in := range raw.Instruments {
		if !seedSymbolRegex.MatchString(in.Symbol) {
			return nil, fmt.Errorf("instrument symbol must match ^[A-Z]{1,10}$, got %q", in.Symbol)
		}
		if seenSymbols[in.Symbol] {
			return nil, fmt.Errorf("duplicate instrument symbol: %s", in.Symbol)
		}
		seenSymbols[in.Symbol] = true

		if in.BasePrice <= 0 {
			return nil, fmt.Errorf("base_price must be > 0 for symbol %s", in.Symbol)
		}
		cents, err := domain.DollarsToCents(in.BasePrice)
		if err != nil {
			return nil, fmt.Errorf("base_price for symbol %s: %w", in.Symbol, err)
		}
		seed.Instruments = append(seed.Instruments, domain.Instrument{
			Symbol:       in.Symbol,
			BasePrice:    cents,
			CurrentPrice: cents,
		})
	}

	seenUsers := make(map[string]bool, len(raw.Accounts))
	for _, a := range raw.Accounts {
		if a.UserID == "" {
			return nil, fmt.Errorf("account user_id must not be empty")
		}
		if seenUsers[a.UserID] {
			return nil, fmt.Errorf("duplicate account user_id: %s", a.UserID)
		}
		seenUsers[a.UserID] = true

		if a.Balance < 0 {
			return nil, fmt.Errorf("balance must be >= 0 for user %s", a.UserID)
		}
		cents, err := domain.DollarsToCents(a.Balance)
		if err != nil {
			return nil, fmt.Errorf("balance for user %s: %w", a.UserID, err)
		}
		seed.Accounts = append(seed.Accounts, domain.Account{
			UserID:    a.UserID,
			Balance:   cents,
			CreatedAt: now,
		})
	}

	return seed, nil
}

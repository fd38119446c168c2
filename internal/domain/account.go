package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the type of account in the system
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeCash       AccountType = "CASH"
)

// Account represents a ledger account snapshot in the domain layer.
// Balances are owned by the external ledger; the engine only reads them.
type Account struct {
	ID          uuid.UUID
	Name        string
	Balance     decimal.Decimal
	AccountType AccountType // Empty string means untagged
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("account name cannot be empty")
	}

	// AccountType is optional, but when present it must be a known tag
	switch a.AccountType {
	case "", AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment, AccountTypeCash:
		return nil
	default:
		return errors.New("account type must be CHECKING, SAVINGS, INVESTMENT, or CASH")
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType distinguishes the two kinds of accounts the bank offers.
// Only savings accounts earn interest.
type AccountType string

const (
	Savings AccountType = "Savings"
	Salary  AccountType = "Salary"
)

// Currency is the ISO code an account is denominated in.
type Currency string

const (
	SEK Currency = "SEK"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// Account represents a bank account. A non-empty PinHash marks the account
// as PIN-protected: fund movement then requires an unlocked session.
type Account struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"account_type"`
	Currency    Currency        `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"last_updated"`
	PinHash     string          `json:"pin_hash,omitempty"`
}

// Protected reports whether the account requires a PIN unlock before
// fund movement.
func (a *Account) Protected() bool {
	return a.PinHash != ""
}

// InterestEligible reports whether the account type earns interest.
func (a *Account) InterestEligible() bool {
	return a.AccountType == Savings
}

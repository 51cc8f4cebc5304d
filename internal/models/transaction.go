package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	Deposit    TransactionType = "Deposit"
	Withdrawal TransactionType = "Withdrawal"
	Transfer   TransactionType = "Transfer"
)

// Transaction is one append-only ledger entry. Amount is signed: credits are
// positive, debits negative. BalanceAfter is the owning account's balance at
// commit time, stored verbatim for audit rather than recomputed later.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	AccountID      uuid.UUID       `json:"account_id"`
	CounterpartyID *uuid.UUID      `json:"counterparty_id,omitempty"`
	Type           TransactionType `json:"type"`
}

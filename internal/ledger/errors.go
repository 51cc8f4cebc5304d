package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Expected business outcomes. These describe rejected operations, not
// faults: nothing was mutated and previously committed state is intact.
// Storage and serialization failures come back wrapped and match none of
// these sentinels.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountLocked     = errors.New("account is locked")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
	ErrInvalidRate       = errors.New("interest rate must be greater than zero")
	ErrMalformedSnapshot = errors.New("malformed snapshot document")
)

// InsufficientFundsError reports a rejected debit together with the figures
// the caller needs for display.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Balance   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %s, balance %s", e.Requested, e.Balance)
}

// Package ledger implements the account ledger engine: it owns account
// balances, enforces money-movement invariants, gates privileged operations
// behind a PIN and maintains the append-only transaction history.
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/models"
	"github.com/bankcore/ledger/internal/storage"
)

// Engine orchestrates account mutation and ledger append as one logical
// unit. Persistence is read-modify-write of whole collections, so a mutex
// serializes every operation end to end: the single-writer queue that keeps
// the non-negative-balance and paired-transfer invariants intact under
// concurrent callers.
//
// The unlock session lives on the engine instance, not in package state.
// It is scoped to the process lifetime and never expires on its own.
type Engine struct {
	mu       sync.Mutex
	accounts storage.AccountStore
	ledger   storage.TransactionLedger
	unlocked map[uuid.UUID]struct{}
	log      *logrus.Logger
}

// NewEngine returns an engine over the given stores with an empty unlock
// session.
func NewEngine(accounts storage.AccountStore, ledger storage.TransactionLedger, log *logrus.Logger) *Engine {
	return &Engine{
		accounts: accounts,
		ledger:   ledger,
		unlocked: make(map[uuid.UUID]struct{}),
		log:      log,
	}
}

// CreateAccount generates a new account and persists it. An account created
// with a PIN hash starts unlocked for the current session.
func (e *Engine) CreateAccount(name string, typ models.AccountType, currency models.Currency, initial decimal.Decimal, pinHash string) (*models.Account, error) {
	if initial.IsNegative() {
		return nil, ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		return nil, err
	}
	account := models.Account{
		ID:          uuid.New(),
		Name:        name,
		AccountType: typ,
		Currency:    currency,
		Balance:     initial,
		LastUpdated: time.Now(),
		PinHash:     pinHash,
	}
	accounts = append(accounts, account)
	if err := e.accounts.SaveAll(accounts); err != nil {
		return nil, err
	}
	if account.Protected() {
		e.unlocked[account.ID] = struct{}{}
	}
	e.log.Infof("account created: %s (%s)", account.ID, account.AccountType)
	return &account, nil
}

// DeleteAccount removes the account and discards its unlock session entry.
// Deleting a nonexistent account is a no-op.
func (e *Engine) DeleteAccount(id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		return err
	}
	kept := make([]models.Account, 0, len(accounts))
	removed := false
	for _, a := range accounts {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return nil
	}
	delete(e.unlocked, id)
	if err := e.accounts.SaveAll(kept); err != nil {
		return err
	}
	e.log.Infof("account deleted: %s", id)
	return nil
}

// ListAccounts returns the full current account snapshot.
func (e *Engine) ListAccounts() ([]models.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accounts.LoadAll()
}

// Unlock adds the account to the session's unlocked set if the supplied
// value matches the stored PIN hash byte for byte. A mismatch and a missing
// account are indistinguishable to the caller.
func (e *Engine) Unlock(id uuid.UUID, pin string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		e.log.Errorf("unlock failed to load accounts: %v", err)
		return false
	}
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		if accounts[i].Protected() && accounts[i].PinHash == pin {
			e.unlocked[id] = struct{}{}
			return true
		}
		return false
	}
	return false
}

// IsUnlocked reports whether the account has been unlocked this session.
func (e *Engine) IsUnlocked(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.unlocked[id]
	return ok
}

// Deposit credits the account and appends a Deposit entry.
func (e *Engine) Deposit(id uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		return err
	}
	i := indexOf(accounts, id)
	if i < 0 {
		return ErrAccountNotFound
	}
	if !e.operable(&accounts[i]) {
		return ErrAccountLocked
	}
	now := time.Now()
	accounts[i].Balance = accounts[i].Balance.Add(amount)
	accounts[i].LastUpdated = now
	return e.commit(accounts, models.Transaction{
		ID:           uuid.New(),
		Date:         now,
		Amount:       amount,
		BalanceAfter: accounts[i].Balance,
		AccountID:    id,
		Type:         models.Deposit,
	})
}

// Withdraw debits the account and appends a Withdrawal entry with a
// negative amount. Overdrafts are rejected with the requested amount and
// current balance attached for display.
func (e *Engine) Withdraw(id uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		return err
	}
	i := indexOf(accounts, id)
	if i < 0 {
		return ErrAccountNotFound
	}
	if !e.operable(&accounts[i]) {
		return ErrAccountLocked
	}
	if accounts[i].Balance.LessThan(amount) {
		return &InsufficientFundsError{Requested: amount, Balance: accounts[i].Balance}
	}
	now := time.Now()
	accounts[i].Balance = accounts[i].Balance.Sub(amount)
	accounts[i].LastUpdated = now
	return e.commit(accounts, models.Transaction{
		ID:           uuid.New(),
		Date:         now,
		Amount:       amount.Neg(),
		BalanceAfter: accounts[i].Balance,
		AccountID:    id,
		Type:         models.Withdrawal,
	})
}

// Transfer moves funds between two accounts and appends one Transfer leg
// per side: a negative debit on the sender, a positive credit on the
// receiver, each naming the other as counterparty. Only the source
// account's lock state gates the operation.
func (e *Engine) Transfer(from, to uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if from == to {
		return ErrSameAccount
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		return err
	}
	fi := indexOf(accounts, from)
	ti := indexOf(accounts, to)
	if fi < 0 || ti < 0 {
		return ErrAccountNotFound
	}
	if !e.operable(&accounts[fi]) {
		return ErrAccountLocked
	}
	if accounts[fi].Balance.LessThan(amount) {
		return &InsufficientFundsError{Requested: amount, Balance: accounts[fi].Balance}
	}
	now := time.Now()
	accounts[fi].Balance = accounts[fi].Balance.Sub(amount)
	accounts[fi].LastUpdated = now
	accounts[ti].Balance = accounts[ti].Balance.Add(amount)
	accounts[ti].LastUpdated = now

	debit := models.Transaction{
		ID:             uuid.New(),
		Date:           now,
		Amount:         amount.Neg(),
		BalanceAfter:   accounts[fi].Balance,
		AccountID:      from,
		CounterpartyID: &to,
		Type:           models.Transfer,
	}
	credit := models.Transaction{
		ID:             uuid.New(),
		Date:           now,
		Amount:         amount,
		BalanceAfter:   accounts[ti].Balance,
		AccountID:      to,
		CounterpartyID: &from,
		Type:           models.Transfer,
	}
	return e.commit(accounts, debit, credit)
}

// ApplyInterest credits balance × rate to every savings account whose PIN
// gate is satisfied, appending a Deposit entry per credited account, and
// returns how many accounts were affected. Zero affected accounts with a
// nil error is the informational "none eligible" outcome, not a failure.
func (e *Engine) ApplyInterest(rate decimal.Decimal) (int, error) {
	if !rate.IsPositive() {
		return 0, ErrInvalidRate
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		return 0, err
	}
	now := time.Now()
	var entries []models.Transaction
	affected := 0
	for i := range accounts {
		a := &accounts[i]
		if !a.InterestEligible() || !e.operable(a) {
			continue
		}
		interest := a.Balance.Mul(rate)
		if !interest.IsPositive() {
			continue
		}
		a.Balance = a.Balance.Add(interest)
		a.LastUpdated = now
		entries = append(entries, models.Transaction{
			ID:           uuid.New(),
			Date:         now,
			Amount:       interest,
			BalanceAfter: a.Balance,
			AccountID:    a.ID,
			Type:         models.Deposit,
		})
		affected++
	}
	if affected == 0 {
		e.log.Infof("interest run: no eligible accounts")
		return 0, nil
	}
	if err := e.commit(accounts, entries...); err != nil {
		return 0, err
	}
	e.log.Infof("interest applied to %d account(s) at rate %s", affected, rate)
	return affected, nil
}

// Transactions returns the ledger entries belonging to the account, newest
// first. Newest-first is the user-facing contract.
func (e *Engine) Transactions(id uuid.UUID) ([]models.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	all, err := e.ledger.Load()
	if err != nil {
		return nil, err
	}
	// Walk backwards so entries with identical timestamps still come out in
	// reverse insertion order.
	out := make([]models.Transaction, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].AccountID == id {
			out = append(out, all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// Export bundles the full account list and transaction log into one JSON
// snapshot document.
func (e *Engine) Export() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts, err := e.accounts.LoadAll()
	if err != nil {
		return nil, err
	}
	transactions, err := e.ledger.Load()
	if err != nil {
		return nil, err
	}
	snap := models.Snapshot{Accounts: accounts, Transactions: transactions}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Import wholesale-replaces both collections from a snapshot document.
// Unparseable input, or a document without an accounts list, is rejected
// before anything is touched. A missing transactions list imports as an
// empty ledger.
func (e *Engine) Import(data []byte) error {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if snap.Accounts == nil {
		return fmt.Errorf("%w: accounts list is missing", ErrMalformedSnapshot)
	}
	if snap.Transactions == nil {
		snap.Transactions = []models.Transaction{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.accounts.SaveAll(snap.Accounts); err != nil {
		return err
	}
	if err := e.ledger.Save(snap.Transactions); err != nil {
		return err
	}
	e.log.Infof("snapshot imported: %d account(s), %d transaction(s)", len(snap.Accounts), len(snap.Transactions))
	return nil
}

// operable reports whether the PIN gate allows fund movement on the
// account. Must be called with the engine lock held.
func (e *Engine) operable(a *models.Account) bool {
	if !a.Protected() {
		return true
	}
	_, ok := e.unlocked[a.ID]
	return ok
}

// commit persists the mutated account snapshot and appends the given
// entries to the transaction log. Must be called with the engine lock held.
func (e *Engine) commit(accounts []models.Account, entries ...models.Transaction) error {
	transactions, err := e.ledger.Load()
	if err != nil {
		return err
	}
	if err := e.accounts.SaveAll(accounts); err != nil {
		return err
	}
	return e.ledger.Save(append(transactions, entries...))
}

func indexOf(accounts []models.Account, id uuid.UUID) int {
	for i := range accounts {
		if accounts[i].ID == id {
			return i
		}
	}
	return -1
}

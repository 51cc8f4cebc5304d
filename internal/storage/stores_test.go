package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankcore/ledger/internal/models"
)

type fakeKV struct {
	blobs map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{blobs: make(map[string][]byte)}
}

func (k *fakeKV) Load(key string) ([]byte, error) {
	data, ok := k.blobs[key]
	if !ok {
		return nil, ErrNoData
	}
	return data, nil
}

func (k *fakeKV) Save(key string, data []byte) error {
	k.blobs[key] = data
	return nil
}

func TestAccountStoreEmpty(t *testing.T) {
	store := NewAccountStore(newFakeKV())
	accounts, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if accounts == nil || len(accounts) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", accounts)
	}
}

func TestAccountStoreRoundTrip(t *testing.T) {
	store := NewAccountStore(newFakeKV())
	account := models.Account{
		ID:          uuid.New(),
		Name:        "Alice",
		AccountType: models.Savings,
		Currency:    models.SEK,
		Balance:     decimal.RequireFromString("1234.56"),
		LastUpdated: time.Now(),
		PinHash:     "abc",
	}
	if err := store.SaveAll([]models.Account{account}); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded=%d want=1", len(loaded))
	}
	got := loaded[0]
	if got.ID != account.ID || got.Name != account.Name || got.AccountType != account.AccountType {
		t.Fatalf("got=%+v want=%+v", got, account)
	}
	if !got.Balance.Equal(account.Balance) {
		t.Fatalf("balance=%s want=%s", got.Balance, account.Balance)
	}
	if got.PinHash != account.PinHash {
		t.Fatalf("pin hash=%q want=%q", got.PinHash, account.PinHash)
	}
}

func TestAccountStoreCorruptBlob(t *testing.T) {
	kv := newFakeKV()
	kv.blobs[AccountsKey] = []byte("{corrupt")
	if _, err := NewAccountStore(kv).LoadAll(); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("want decode error, got %v", err)
	}
}

func TestTransactionLedgerRoundTrip(t *testing.T) {
	ledger := NewTransactionLedger(newFakeKV())
	counter := uuid.New()
	entry := models.Transaction{
		ID:             uuid.New(),
		Date:           time.Now(),
		Amount:         decimal.RequireFromString("-42.10"),
		BalanceAfter:   decimal.RequireFromString("57.90"),
		AccountID:      uuid.New(),
		CounterpartyID: &counter,
		Type:           models.Transfer,
	}
	if err := ledger.Save([]models.Transaction{entry}); err != nil {
		t.Fatal(err)
	}
	loaded, err := ledger.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded=%d want=1", len(loaded))
	}
	got := loaded[0]
	if got.ID != entry.ID || got.Type != models.Transfer {
		t.Fatalf("got=%+v", got)
	}
	if !got.Amount.Equal(entry.Amount) || !got.BalanceAfter.Equal(entry.BalanceAfter) {
		t.Fatalf("amounts: %s/%s", got.Amount, got.BalanceAfter)
	}
	if got.CounterpartyID == nil || *got.CounterpartyID != counter {
		t.Fatalf("counterparty=%v want=%s", got.CounterpartyID, counter)
	}
}

func TestTransactionLedgerEmpty(t *testing.T) {
	ledger := NewTransactionLedger(newFakeKV())
	transactions, err := ledger.Load()
	if err != nil {
		t.Fatal(err)
	}
	if transactions == nil || len(transactions) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", transactions)
	}
}

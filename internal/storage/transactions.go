package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bankcore/ledger/internal/models"
)

// TransactionLedger persists the append-only transaction log under one key.
// The engine only ever appends entries or replaces the log wholesale on
// snapshot import.
type TransactionLedger interface {
	Load() ([]models.Transaction, error)
	Save(transactions []models.Transaction) error
}

type kvTransactionLedger struct {
	kv KV
}

// NewTransactionLedger returns a TransactionLedger backed by the given
// blob store.
func NewTransactionLedger(kv KV) TransactionLedger {
	return &kvTransactionLedger{kv: kv}
}

func (l *kvTransactionLedger) Load() ([]models.Transaction, error) {
	data, err := l.kv.Load(TransactionsKey)
	if errors.Is(err, ErrNoData) {
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, err
	}
	var transactions []models.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, nil
}

func (l *kvTransactionLedger) Save(transactions []models.Transaction) error {
	data, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	return l.kv.Save(TransactionsKey, data)
}

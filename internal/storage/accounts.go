package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bankcore/ledger/internal/models"
)

// AccountStore persists the full account collection under one key.
// There is no partial-update primitive: SaveAll replaces everything.
type AccountStore interface {
	LoadAll() ([]models.Account, error)
	SaveAll(accounts []models.Account) error
}

type kvAccountStore struct {
	kv KV
}

// NewAccountStore returns an AccountStore backed by the given blob store.
func NewAccountStore(kv KV) AccountStore {
	return &kvAccountStore{kv: kv}
}

func (s *kvAccountStore) LoadAll() ([]models.Account, error) {
	data, err := s.kv.Load(AccountsKey)
	if errors.Is(err, ErrNoData) {
		return []models.Account{}, nil
	}
	if err != nil {
		return nil, err
	}
	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

func (s *kvAccountStore) SaveAll(accounts []models.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	return s.kv.Save(AccountsKey, data)
}

// Package storage persists the bank's collections as named JSON blobs.
// The engine never updates individual records: each collection is loaded and
// replaced wholesale, so any backend that can store a blob under a key works.
package storage

import "errors"

// Well-known keys under which the collections are persisted.
const (
	AccountsKey     = "bankapp_accounts"
	TransactionsKey = "bankapp_transactions"
)

// ErrNoData is returned by Load when nothing has been persisted under a key
// yet. Callers treat it as an empty collection, not a fault.
var ErrNoData = errors.New("no data stored under key")

// KV is the persistent key-value store contract. Data is opaque to the
// backend; serialization belongs to the adapters on top.
type KV interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

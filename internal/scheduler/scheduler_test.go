package scheduler

import (
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/ledger"
	"github.com/bankcore/ledger/internal/storage"
)

type memKV struct {
	blobs map[string][]byte
}

func (k *memKV) Load(key string) ([]byte, error) {
	data, ok := k.blobs[key]
	if !ok {
		return nil, storage.ErrNoData
	}
	return data, nil
}

func (k *memKV) Save(key string, data []byte) error {
	k.blobs[key] = data
	return nil
}

func newScheduler() *Scheduler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	kv := &memKV{blobs: make(map[string][]byte)}
	engine := ledger.NewEngine(storage.NewAccountStore(kv), storage.NewTransactionLedger(kv), log)
	return New(engine, log)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := newScheduler()
	if err := s.Start("every other tuesday", decimal.RequireFromString("0.01"), nil); err == nil {
		t.Fatal("want error for invalid cron spec")
	}
}

func TestStartAndStop(t *testing.T) {
	s := newScheduler()
	if err := s.Start("@monthly", decimal.RequireFromString("0.01"), nil); err != nil {
		t.Fatal(err)
	}
	s.Stop()
}

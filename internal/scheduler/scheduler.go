// Package scheduler runs interest application on a cron schedule.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/ledger"
)

// Scheduler periodically credits interest to eligible savings accounts.
type Scheduler struct {
	cron   *cron.Cron
	engine *ledger.Engine
	log    *logrus.Logger
}

// New returns a stopped scheduler over the engine.
func New(engine *ledger.Engine, log *logrus.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), engine: engine, log: log}
}

// Start registers the interest job under the given cron spec and starts the
// loop. notify, when non-nil, is invoked after every run that credited at
// least one account.
func (s *Scheduler) Start(spec string, rate decimal.Decimal, notify func(affected int)) error {
	_, err := s.cron.AddFunc(spec, func() {
		affected, err := s.engine.ApplyInterest(rate)
		if err != nil {
			s.log.Errorf("scheduled interest run failed: %v", err)
			return
		}
		if affected == 0 {
			s.log.Infof("scheduled interest run: no eligible accounts")
			return
		}
		if notify != nil {
			notify(affected)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Infof("interest scheduler started: %s at rate %s", spec, rate)
	return nil
}

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

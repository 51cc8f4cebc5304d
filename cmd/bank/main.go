package main

import (
	"bufio"
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/cli"
	"github.com/bankcore/ledger/internal/config"
	"github.com/bankcore/ledger/internal/integrations/cbr"
	"github.com/bankcore/ledger/internal/ledger"
	"github.com/bankcore/ledger/internal/scheduler"
	"github.com/bankcore/ledger/internal/storage"
	"github.com/bankcore/ledger/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Pick the blob store backend
	var kv storage.KV
	if cfg.DBConn != "" {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		kv, err = storage.NewPostgresKV(db)
		if err != nil {
			logger.Fatalf("Failed to initialize postgres store: %v", err)
		}
		logger.Infof("Using postgres blob store")
	} else {
		kv, err = storage.NewFileKV(cfg.DataDir)
		if err != nil {
			logger.Fatalf("Failed to initialize file store: %v", err)
		}
		logger.Infof("Using file blob store at %s", cfg.DataDir)
	}

	// Initialize layers
	accounts := storage.NewAccountStore(kv)
	transactions := storage.NewTransactionLedger(kv)
	engine := ledger.NewEngine(accounts, transactions, logger)
	rates := cbr.NewClient(cfg, logger)

	var mailer *email.Sender
	if cfg.MailEnabled() {
		mailer = email.NewSender(cfg, logger)
	}

	// Scheduled interest runs
	if cfg.InterestCron != "" {
		sched := scheduler.New(engine, logger)
		notify := func(affected int) {
			if mailer == nil {
				return
			}
			if err := mailer.SendInterestSummary(affected, cfg.InterestRate); err != nil {
				logger.Errorf("Failed to mail interest summary: %v", err)
			}
		}
		if err := sched.Start(cfg.InterestCron, cfg.InterestRate, notify); err != nil {
			logger.Fatalf("Failed to start interest scheduler: %v", err)
		}
		defer sched.Stop()
	}

	ui := cli.NewUI(engine, rates, mailer, cfg, bufio.NewReader(os.Stdin), os.Stdout)
	ui.Run()
}

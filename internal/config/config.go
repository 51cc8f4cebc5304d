package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	DataDir            string
	DBConn             string
	LogLevel           string
	AccessPasswordHash string
	InterestRate       decimal.Decimal
	InterestCron       string
	CBRURL             string
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	SenderEmail        string
	StatementEmail     string
}

// NewConfig loads configuration from environment variables. DB_CONN selects
// the Postgres blob store; otherwise collections are kept as files under
// DATA_DIR. ACCESS_PASSWORD_HASH is a bcrypt hash; leaving it empty disables
// the application gate. INTEREST_CRON left empty disables scheduled
// interest runs.
func NewConfig() (*Config, error) {
	cfg := &Config{
		DataDir:            getEnv("DATA_DIR", "./data"),
		DBConn:             getEnv("DB_CONN", ""),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		AccessPasswordHash: getEnv("ACCESS_PASSWORD_HASH", ""),
		InterestCron:       getEnv("INTEREST_CRON", ""),
		CBRURL:             getEnv("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SenderEmail:        getEnv("SENDER_EMAIL", ""),
		StatementEmail:     getEnv("STATEMENT_EMAIL", ""),
	}

	rate, err := decimal.NewFromString(getEnv("INTEREST_RATE", "0.02"))
	if err != nil {
		return nil, fmt.Errorf("invalid INTEREST_RATE: %w", err)
	}
	cfg.InterestRate = rate

	if cfg.DataDir == "" && cfg.DBConn == "" {
		return nil, fmt.Errorf("either DATA_DIR or DB_CONN is required")
	}
	if cfg.InterestCron != "" && !cfg.InterestRate.IsPositive() {
		return nil, fmt.Errorf("INTEREST_RATE must be positive when INTEREST_CRON is set")
	}

	return cfg, nil
}

// MailEnabled reports whether outgoing mail is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != "" && c.StatementEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

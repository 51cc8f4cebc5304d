package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, log *logrus.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// SendInterestSummary mails a short summary after an interest run.
func (s *Sender) SendInterestSummary(affected int, rate decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.StatementEmail}
	e.Subject = "Interest Run Summary"
	e.Text = []byte(fmt.Sprintf(
		"Interest was applied to %d account(s) at rate %s.\nRun time: %s\n",
		affected, rate, time.Now().Format("2006-01-02 15:04:05"),
	))
	return s.send(e)
}

// SendStatement mails the exported snapshot as a JSON attachment.
func (s *Sender) SendStatement(snapshot []byte) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.StatementEmail}
	e.Subject = "Account Statement Export"
	e.Text = []byte(fmt.Sprintf(
		"Attached is the full account and transaction export as of %s.\n",
		time.Now().Format("2006-01-02 15:04:05"),
	))
	name := fmt.Sprintf("statement-%s.json", time.Now().Format("20060102-150405"))
	if _, err := e.Attach(bytes.NewReader(snapshot), name, "application/json"); err != nil {
		return fmt.Errorf("failed to attach statement: %w", err)
	}
	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.log.Errorf("failed to send email %q: %v", e.Subject, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.log.Infof("email sent to %s: %s", s.cfg.StatementEmail, e.Subject)
	return nil
}

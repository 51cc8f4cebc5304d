package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankcore/ledger/internal/models"
)

func (ui *UI) listAccounts() {
	accounts, err := ui.engine.ListAccounts()
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	if len(accounts) == 0 {
		fmt.Fprintln(ui.out, "No accounts.")
		return
	}
	for _, a := range accounts {
		lock := ""
		if a.Protected() {
			if ui.engine.IsUnlocked(a.ID) {
				lock = " [unlocked]"
			} else {
				lock = " [locked]"
			}
		}
		fmt.Fprintf(ui.out, "- %s  %-16s %-8s %s %s%s\n", a.ID, a.Name, a.AccountType, a.Balance, a.Currency, lock)
	}
}

func (ui *UI) createAccount() {
	name := ui.prompt("Name: ")
	typ := models.Salary
	if ui.prompt("Type (1=Savings, 2=Salary): ") == "1" {
		typ = models.Savings
	}
	currency := models.Currency(ui.prompt("Currency (SEK/USD/EUR): "))
	if currency == "" {
		currency = models.SEK
	}
	initial, err := decimal.NewFromString(ui.prompt("Initial balance: "))
	if err != nil {
		fmt.Fprintln(ui.out, "Invalid amount.")
		return
	}
	pinHash := ""
	if pin := ui.prompt("PIN (empty for none): "); pin != "" {
		pinHash = HashPIN(pin)
	}
	account, err := ui.engine.CreateAccount(name, typ, currency, initial, pinHash)
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintf(ui.out, "Account %s created.\n", account.ID)
}

func (ui *UI) deleteAccount() {
	id, ok := ui.readAccountID("Account ID: ")
	if !ok {
		return
	}
	if err := ui.engine.DeleteAccount(id); err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintln(ui.out, "Deleted.")
}

func (ui *UI) deposit() {
	id, ok := ui.readAccountID("Account ID: ")
	if !ok {
		return
	}
	amount, ok := ui.readAmount("Amount: ")
	if !ok {
		return
	}
	if err := ui.engine.Deposit(id, amount); err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintln(ui.out, "Deposited.")
}

func (ui *UI) withdraw() {
	id, ok := ui.readAccountID("Account ID: ")
	if !ok {
		return
	}
	amount, ok := ui.readAmount("Amount: ")
	if !ok {
		return
	}
	if err := ui.engine.Withdraw(id, amount); err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintln(ui.out, "Withdrawn.")
}

func (ui *UI) transfer() {
	from, ok := ui.readAccountID("From account ID: ")
	if !ok {
		return
	}
	to, ok := ui.readAccountID("To account ID: ")
	if !ok {
		return
	}
	amount, ok := ui.readAmount("Amount: ")
	if !ok {
		return
	}
	if err := ui.engine.Transfer(from, to, amount); err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintln(ui.out, "Transferred.")
}

func (ui *UI) unlock() {
	id, ok := ui.readAccountID("Account ID: ")
	if !ok {
		return
	}
	pin := ui.prompt("PIN: ")
	if ui.engine.Unlock(id, HashPIN(pin)) {
		fmt.Fprintln(ui.out, "Unlocked.")
	} else {
		fmt.Fprintln(ui.out, "Unlock failed.")
	}
}

func (ui *UI) history() {
	id, ok := ui.readAccountID("Account ID: ")
	if !ok {
		return
	}
	transactions, err := ui.engine.Transactions(id)
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	if len(transactions) == 0 {
		fmt.Fprintln(ui.out, "No transactions.")
		return
	}
	for _, t := range transactions {
		counter := ""
		if t.CounterpartyID != nil {
			counter = "  <-> " + t.CounterpartyID.String()
		}
		fmt.Fprintf(ui.out, "%s  %-10s %12s  balance %s%s\n",
			t.Date.Format(time.RFC3339), t.Type, t.Amount, t.BalanceAfter, counter)
	}
}

func (ui *UI) applyInterest() {
	fmt.Fprintf(ui.out, "Configured rate is %s.\n", ui.cfg.InterestRate)
	rate := ui.cfg.InterestRate
	if raw := ui.prompt("Rate (empty to use configured): "); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Fprintln(ui.out, "Invalid rate.")
			return
		}
		rate = parsed
	}
	affected, err := ui.engine.ApplyInterest(rate)
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	if affected == 0 {
		fmt.Fprintln(ui.out, "No eligible accounts.")
		return
	}
	fmt.Fprintf(ui.out, "Interest applied to %d account(s).\n", affected)
}

func (ui *UI) showKeyRate() {
	if ui.rates == nil {
		fmt.Fprintln(ui.out, "Key rate client is not configured.")
		return
	}
	rate, err := ui.rates.KeyRate()
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintf(ui.out, "Central bank key rate: %.2f%% per annum (reference only).\n", rate)
}

func (ui *UI) exportSnapshot() {
	path := ui.prompt("Write to file: ")
	if path == "" {
		fmt.Fprintln(ui.out, "No file given.")
		return
	}
	data, err := ui.engine.Export()
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintln(ui.out, "Exported to", path)
}

func (ui *UI) importSnapshot() {
	path := ui.prompt("Read from file: ")
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	if err := ui.engine.Import(data); err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintln(ui.out, "Imported. Existing data was replaced.")
}

func (ui *UI) emailStatement() {
	if ui.mailer == nil {
		fmt.Fprintln(ui.out, "Mail is not configured.")
		return
	}
	data, err := ui.engine.Export()
	if err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	if err := ui.mailer.SendStatement(data); err != nil {
		fmt.Fprintln(ui.out, "Error:", err)
		return
	}
	fmt.Fprintln(ui.out, "Statement sent.")
}

func (ui *UI) readAccountID(label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ui.prompt(label))
	if err != nil {
		fmt.Fprintln(ui.out, "Invalid account ID.")
		return uuid.UUID{}, false
	}
	return id, true
}

func (ui *UI) readAmount(label string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(ui.prompt(label))
	if err != nil {
		fmt.Fprintln(ui.out, "Invalid amount.")
		return decimal.Decimal{}, false
	}
	return amount, true
}

// Package cli is the terminal front end. It is thin glue over the ledger
// engine: it parses operator input, invokes engine operations and renders
// their outcomes. The application gate and PIN hashing live here because
// the engine deliberately knows nothing about passwords or hash schemes.
package cli

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bankcore/ledger/internal/config"
	"github.com/bankcore/ledger/internal/integrations/cbr"
	"github.com/bankcore/ledger/internal/ledger"
	"github.com/bankcore/ledger/internal/utils/email"
)

const maxGateAttempts = 3

// UI drives the interactive session.
type UI struct {
	engine *ledger.Engine
	rates  *cbr.Client
	mailer *email.Sender
	cfg    *config.Config
	in     *bufio.Reader
	out    io.Writer
}

// NewUI wires the front end. rates and mailer may be nil when the matching
// integration is not configured.
func NewUI(engine *ledger.Engine, rates *cbr.Client, mailer *email.Sender, cfg *config.Config, in *bufio.Reader, out io.Writer) *UI {
	return &UI{engine: engine, rates: rates, mailer: mailer, cfg: cfg, in: in, out: out}
}

// HashPIN derives the value stored as an account's PIN hash. The engine
// compares stored and supplied values byte for byte, so the derivation must
// be deterministic.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// Run gates the session behind the application password, then loops over
// the main menu until the operator quits.
func (ui *UI) Run() {
	if !ui.gate() {
		fmt.Fprintln(ui.out, "Too many failed attempts.")
		return
	}
	for {
		ui.printMenu()
		switch ui.prompt("> ") {
		case "1":
			ui.listAccounts()
		case "2":
			ui.createAccount()
		case "3":
			ui.deleteAccount()
		case "4":
			ui.deposit()
		case "5":
			ui.withdraw()
		case "6":
			ui.transfer()
		case "7":
			ui.unlock()
		case "8":
			ui.history()
		case "9":
			ui.applyInterest()
		case "10":
			ui.showKeyRate()
		case "11":
			ui.exportSnapshot()
		case "12":
			ui.importSnapshot()
		case "13":
			ui.emailStatement()
		case "0", "":
			return
		default:
			fmt.Fprintln(ui.out, "Unknown choice.")
		}
	}
}

// gate verifies the application password against the configured bcrypt
// hash. An empty hash disables the gate.
func (ui *UI) gate() bool {
	if ui.cfg.AccessPasswordHash == "" {
		return true
	}
	for attempt := 0; attempt < maxGateAttempts; attempt++ {
		pass := ui.prompt("Password: ")
		if bcrypt.CompareHashAndPassword([]byte(ui.cfg.AccessPasswordHash), []byte(pass)) == nil {
			return true
		}
		fmt.Fprintln(ui.out, "Wrong password.")
	}
	return false
}

func (ui *UI) printMenu() {
	fmt.Fprintln(ui.out, "\n=== Bank Ledger ===")
	fmt.Fprintln(ui.out, "1)  List accounts")
	fmt.Fprintln(ui.out, "2)  Create account")
	fmt.Fprintln(ui.out, "3)  Delete account")
	fmt.Fprintln(ui.out, "4)  Deposit")
	fmt.Fprintln(ui.out, "5)  Withdraw")
	fmt.Fprintln(ui.out, "6)  Transfer")
	fmt.Fprintln(ui.out, "7)  Unlock account")
	fmt.Fprintln(ui.out, "8)  Transaction history")
	fmt.Fprintln(ui.out, "9)  Apply interest")
	fmt.Fprintln(ui.out, "10) Show central bank key rate")
	fmt.Fprintln(ui.out, "11) Export snapshot to file")
	fmt.Fprintln(ui.out, "12) Import snapshot from file")
	fmt.Fprintln(ui.out, "13) Email statement")
	fmt.Fprintln(ui.out, "0)  Quit")
}

func (ui *UI) prompt(label string) string {
	fmt.Fprint(ui.out, label)
	line, err := ui.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

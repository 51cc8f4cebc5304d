package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/bankcore/ledger/internal/config"
)

func TestHashPINDeterministic(t *testing.T) {
	first := HashPIN("1234")
	second := HashPIN("1234")
	if first != second {
		t.Fatal("HashPIN must be deterministic")
	}
	if len(first) != 64 {
		t.Fatalf("hash length=%d want=64 hex chars", len(first))
	}
	if HashPIN("1235") == first {
		t.Fatal("different PINs should hash differently")
	}
}

func TestGateDisabledWithoutHash(t *testing.T) {
	ui := NewUI(nil, nil, nil, &config.Config{}, bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	if !ui.gate() {
		t.Fatal("empty hash should disable the gate")
	}
}

func TestGateAcceptsPasswordAfterRetry(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{AccessPasswordHash: string(hash)}
	in := bufio.NewReader(strings.NewReader("wrong\nopen sesame\n"))
	ui := NewUI(nil, nil, nil, cfg, in, &bytes.Buffer{})
	if !ui.gate() {
		t.Fatal("correct password on second attempt should pass the gate")
	}
}

func TestGateRejectsAfterMaxAttempts(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{AccessPasswordHash: string(hash)}
	in := bufio.NewReader(strings.NewReader("a\nb\nc\n"))
	ui := NewUI(nil, nil, nil, cfg, in, &bytes.Buffer{})
	if ui.gate() {
		t.Fatal("three wrong passwords should close the gate")
	}
}

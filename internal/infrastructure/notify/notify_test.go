package notify

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newCapturingNotifier(cfg SMTPConfig) (*SMTPNotifier, *capturedMail) {
	captured := &capturedMail{}
	n := NewSMTPNotifier(cfg)
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		captured.addr = addr
		captured.auth = a
		captured.from = from
		captured.to = append([]string(nil), to...)
		captured.msg = string(msg)
		return nil
	}

	return n, captured
}

func TestSMTPNotifier_TransactionRecorded(t *testing.T) {
	n, captured := newCapturingNotifier(SMTPConfig{
		Addr: "mail.example.com:587",
		From: "no-reply@example.com",
	})

	err := n.TransactionRecorded(context.Background(), "alice@example.com",
		domain.TransactionTypeCredit, decimal.NewFromInt(100), decimal.NewFromInt(600))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.addr != "mail.example.com:587" {
		t.Errorf("expected configured addr, got %q", captured.addr)
	}
	if len(captured.to) != 1 || captured.to[0] != "alice@example.com" {
		t.Errorf("expected recipient alice@example.com, got %v", captured.to)
	}
	if captured.auth != nil {
		t.Error("expected no auth without credentials")
	}

	if !strings.Contains(captured.msg, "Subject: Transaction Credit Confirmation for your account") {
		t.Errorf("missing subject in message:\n%s", captured.msg)
	}
	if !strings.Contains(captured.msg, "Your Credit transaction of amount 100.00 has been successfully processed.") {
		t.Errorf("missing body line in message:\n%s", captured.msg)
	}
	if !strings.Contains(captured.msg, "Your balance after this transaction is 600.00.") {
		t.Errorf("missing balance line in message:\n%s", captured.msg)
	}
}

func TestSMTPNotifier_LogsExported(t *testing.T) {
	n, captured := newCapturingNotifier(SMTPConfig{
		Addr: "mail.example.com:587",
		From: "no-reply@example.com",
		User: "mailer",
		Pass: "secret",
	})

	err := n.LogsExported(context.Background(), "alice@example.com", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.auth == nil {
		t.Error("expected plain auth when credentials are set")
	}

	if !strings.Contains(captured.msg, "Subject: Your Transaction Logs") {
		t.Errorf("missing subject in message:\n%s", captured.msg)
	}
	if !strings.Contains(captured.msg, "Total number of transactions: 7.") {
		t.Errorf("missing count line in message:\n%s", captured.msg)
	}
}

func TestLogNotifier(t *testing.T) {
	// The log sink always succeeds regardless of payload.
	n := NewLogNotifier(zerolog.Nop())

	if err := n.TransactionRecorded(context.Background(), "alice@example.com",
		domain.TransactionTypeWithdraw, decimal.NewFromInt(50), decimal.NewFromInt(550)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := n.LogsExported(context.Background(), "alice@example.com", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

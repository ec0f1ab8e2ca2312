// Package notify implements the notification sink informed of completed
// ledger operations. All implementations are best-effort from the
// caller's perspective: a failed notification never affects the outcome
// of the operation that triggered it.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mcheviron/ledgerbank/internal/domain"
)

// SMTPConfig holds mail delivery settings.
type SMTPConfig struct {
	Addr string // host:port
	From string
	User string
	Pass string
}

// SMTPNotifier delivers notifications over SMTP.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a new SMTPNotifier.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:  cfg,
		send: smtp.SendMail,
	}
}

// TransactionRecorded mails a confirmation for a committed transaction.
func (n *SMTPNotifier) TransactionRecorded(ctx context.Context, email string, txnType domain.TransactionType, amount, balanceAfter decimal.Decimal) error {
	subject := fmt.Sprintf("Transaction %s Confirmation for your account", txnType)
	body := fmt.Sprintf(
		"Hello,\r\n\r\nYour %s transaction of amount %s has been successfully processed.\r\nYour balance after this transaction is %s.\r\n\r\nThank you for using our service!\r\n",
		txnType, amount.StringFixed(2), balanceAfter.StringFixed(2),
	)

	return n.mail(email, subject, body)
}

// LogsExported mails the owner after a transaction-log export.
func (n *SMTPNotifier) LogsExported(ctx context.Context, email string, count int) error {
	body := fmt.Sprintf(
		"Hello,\r\n\r\nYour transaction logs have been successfully generated.\r\nTotal number of transactions: %d.\r\n\r\nThank you for using our service!\r\n",
		count,
	)

	return n.mail(email, "Your Transaction Logs", body)
}

func (n *SMTPNotifier) mail(to, subject, body string) error {
	var auth smtp.Auth
	if n.cfg.User != "" {
		host := n.cfg.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", n.cfg.From, to, subject, body)

	return n.send(n.cfg.Addr, auth, n.cfg.From, []string{to}, []byte(msg))
}

// LogNotifier writes notifications to the log instead of delivering
// them. Used when no SMTP endpoint is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// TransactionRecorded logs the confirmation that would have been mailed.
func (n *LogNotifier) TransactionRecorded(ctx context.Context, email string, txnType domain.TransactionType, amount, balanceAfter decimal.Decimal) error {
	n.logger.Info().
		Str("email", email).
		Str("type", string(txnType)).
		Str("amount", amount.StringFixed(2)).
		Str("balance_after", balanceAfter.StringFixed(2)).
		Msg("transaction confirmation")

	return nil
}

// LogsExported logs the export notification.
func (n *LogNotifier) LogsExported(ctx context.Context, email string, count int) error {
	n.logger.Info().
		Str("email", email).
		Int("count", count).
		Msg("transaction logs exported")

	return nil
}

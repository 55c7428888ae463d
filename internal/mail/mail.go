// Package mail delivers composed contact messages through a configurable
// transport. Every transport reports an explicit Receipt or an error wrapping
// ErrDelivery or ErrNotConfigured.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osa911/contactrelay/internal/logging"
)

// Sentinel errors for the delivery layer
var (
	ErrDelivery      = errors.New("mail delivery failed")
	ErrNotConfigured = errors.New("mail transport not configured")
)

// Message is a single outbound plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
	ReplyTo string
}

// Receipt identifies an accepted message on the transport that took it.
type Receipt struct {
	Transport string `json:"transport"`
	ID        string `json:"id,omitempty"`
}

// Sender is implemented by every delivery transport.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
	Name() string
}

// Transport names accepted by New.
const (
	TransportSMTP     = "smtp"
	TransportTelegram = "telegram"
	TransportLog      = "log"
)

// Options configures New.
type Options struct {
	Transport string
	From      string
	Timeout   time.Duration

	SMTP     SMTPOptions
	Telegram TelegramOptions
}

// New builds the sender selected by opts.Transport.
func New(opts Options, logger *logging.Logger) (Sender, error) {
	switch opts.Transport {
	case TransportSMTP:
		smtp := opts.SMTP
		smtp.From = opts.From
		if smtp.Timeout == 0 {
			smtp.Timeout = opts.Timeout
		}
		return NewSMTPSender(smtp)
	case TransportTelegram:
		tg := opts.Telegram
		if tg.Timeout == 0 {
			tg.Timeout = opts.Timeout
		}
		return NewTelegramSender(tg)
	case TransportLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", ErrNotConfigured, opts.Transport)
	}
}

func deliveryError(transport string, err error) error {
	return fmt.Errorf("%w via %s: %w", ErrDelivery, transport, err)
}

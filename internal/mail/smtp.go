package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPOptions configures SMTPSender.
type SMTPOptions struct {
	Host      string
	Port      int
	Username  string
	Password  string
	TLSPolicy string // opportunistic, mandatory, none
	SSL       bool
	From      string
	Timeout   time.Duration
}

// SMTPSender relays messages to an SMTP server. A new client is dialed for
// every message, so the sender holds no connection state between requests.
type SMTPSender struct {
	host string
	from string
	opts []gomail.Option
}

// NewSMTPSender validates opts and prepares the client options.
func NewSMTPSender(opts SMTPOptions) (*SMTPSender, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("%w: smtp host is empty", ErrNotConfigured)
	}
	if opts.From == "" {
		return nil, fmt.Errorf("%w: smtp from address is empty", ErrNotConfigured)
	}

	policy, err := tlsPolicy(opts.TLSPolicy)
	if err != nil {
		return nil, err
	}

	clientOpts := []gomail.Option{gomail.WithTLSPolicy(policy)}
	if opts.Port > 0 {
		clientOpts = append(clientOpts, gomail.WithPort(opts.Port))
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, gomail.WithTimeout(opts.Timeout))
	}
	if opts.SSL {
		clientOpts = append(clientOpts, gomail.WithSSL())
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
		)
	}

	return &SMTPSender{
		host: opts.Host,
		from: opts.From,
		opts: clientOpts,
	}, nil
}

func (s *SMTPSender) Name() string { return TransportSMTP }

// Send dials the server and submits msg as a text/plain email.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	m, err := s.buildMsg(msg)
	if err != nil {
		return Receipt{}, deliveryError(TransportSMTP, err)
	}

	client, err := gomail.NewClient(s.host, s.opts...)
	if err != nil {
		return Receipt{}, deliveryError(TransportSMTP, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return Receipt{}, deliveryError(TransportSMTP, err)
	}

	receipt := Receipt{Transport: TransportSMTP}
	if ids := m.GetGenHeader(gomail.HeaderMessageID); len(ids) > 0 {
		receipt.ID = ids[0]
	}
	return receipt, nil
}

func (s *SMTPSender) buildMsg(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetMessageID()
	m.SetDate()
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}

func tlsPolicy(name string) (gomail.TLSPolicy, error) {
	switch strings.ToLower(name) {
	case "", "opportunistic":
		return gomail.TLSOpportunistic, nil
	case "mandatory":
		return gomail.TLSMandatory, nil
	case "none":
		return gomail.NoTLS, nil
	default:
		return gomail.NoTLS, fmt.Errorf("%w: unknown smtp tls policy %q", ErrNotConfigured, name)
	}
}

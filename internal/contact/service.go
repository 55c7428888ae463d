package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/osa911/contactrelay/internal/api/sanitization"
	"github.com/osa911/contactrelay/internal/api/validation"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"
)

const tracerName = "github.com/osa911/contactrelay/internal/contact"

// Input is the raw form data of one request.
type Input struct {
	Submitted bool
	Name      string
	Email     string
	Message   string
}

// Outcome describes what happened to a handled submission.
type Outcome struct {
	Submission Submission
	// EmailDropped is true when an invalid email was blanked under the
	// permissive policy.
	EmailDropped bool
	Delivered    bool
	Receipt      mail.Receipt
	DeliveryErr  error
	// Redirect is where the sender should be sent next.
	Redirect string
}

// Service turns form input into one outbound email.
type Service struct {
	settings Settings
	sender   mail.Sender
	logger   *logging.Logger
}

// NewService validates settings and returns a Service using sender.
func NewService(settings Settings, sender mail.Sender, logger *logging.Logger) (*Service, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contact settings: %w", err)
	}
	if sender == nil {
		return nil, fmt.Errorf("%w: nil sender", mail.ErrNotConfigured)
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Service{settings: settings, sender: sender, logger: logger}, nil
}

// Settings returns the settings the service was built with.
func (s *Service) Settings() Settings {
	return s.settings
}

// Transport returns the name of the configured sender.
func (s *Service) Transport() string {
	return s.sender.Name()
}

// Prepare sanitizes and validates in without sending anything. The returned
// bool reports whether an invalid email was dropped.
func (s *Service) Prepare(in Input) (Submission, bool, error) {
	if !in.Submitted {
		return Submission{}, false, ErrNotSubmitted
	}

	sub := Submission{
		Name:    sanitization.SanitizeName(in.Name),
		Email:   sanitization.SanitizeEmail(in.Email),
		Message: sanitization.SanitizeMessage(in.Message),
	}

	if validation.ValidEmail(sub.Email) {
		return sub, false, nil
	}
	if s.settings.EmailPolicy == EmailPolicyStrict {
		return Submission{}, false, ErrInvalidEmail
	}
	dropped := strings.TrimSpace(in.Email) != ""
	sub.Email = ""
	return sub, dropped, nil
}

// Message builds the outbound message for sub from the fixed settings.
func (s *Service) Message(sub Submission) mail.Message {
	msg := mail.Message{
		To:      s.settings.Recipient,
		Subject: s.settings.Subject,
		Body:    ComposeBody(sub),
	}
	if s.settings.ReplyToSender && sub.Email != "" {
		msg.ReplyTo = sub.Email
	}
	return msg
}

// Submit handles one form post. It returns an error only when the request
// itself is rejected; a failed delivery is reported through the Outcome.
func (s *Service) Submit(ctx context.Context, in Input) (Outcome, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "contact.submit")
	defer span.End()

	sub, dropped, err := s.Prepare(in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}
	if dropped {
		s.logger.Warn("Contact submission from %q had an invalid email, relaying without it", sub.Name)
	}

	out := Outcome{Submission: sub, EmailDropped: dropped}
	out.Receipt, out.DeliveryErr = s.deliver(ctx, s.Message(sub))
	out.Delivered = out.DeliveryErr == nil

	out.Redirect = s.settings.ConfirmationPath
	if !out.Delivered {
		span.RecordError(out.DeliveryErr)
		span.SetStatus(codes.Error, "delivery failed")
		if s.settings.FailurePath != "" {
			out.Redirect = s.settings.FailurePath
		}
		s.logger.Error("Failed to relay contact submission via %s: %v", s.sender.Name(), out.DeliveryErr)
	} else {
		s.logger.Info("Relayed contact submission via %s (id=%s)", out.Receipt.Transport, out.Receipt.ID)
	}

	span.SetAttributes(
		attribute.Bool("contact.delivered", out.Delivered),
		attribute.Bool("contact.email_dropped", dropped),
	)
	return out, nil
}

func (s *Service) deliver(ctx context.Context, msg mail.Message) (mail.Receipt, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mail.send")
	defer span.End()
	span.SetAttributes(attribute.String("mail.transport", s.sender.Name()))

	if s.settings.DeliveryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.DeliveryTimeout)
		defer cancel()
	}

	receipt, err := s.sender.Send(ctx, msg)
	if err != nil {
		if !errors.Is(err, mail.ErrDelivery) && !errors.Is(err, mail.ErrNotConfigured) {
			err = fmt.Errorf("%w: %w", mail.ErrDelivery, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return mail.Receipt{}, err
	}
	return receipt, nil
}

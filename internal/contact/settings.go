package contact

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// EmailPolicy decides what happens to a submission whose email is invalid.
type EmailPolicy string

const (
	// EmailPolicyPermissive blanks the email and relays the rest.
	EmailPolicyPermissive EmailPolicy = "permissive"
	// EmailPolicyStrict rejects the submission.
	EmailPolicyStrict EmailPolicy = "strict"
)

// Settings are the fixed values a Service relays with. None of them can be
// influenced by request input.
type Settings struct {
	Recipient        string
	Subject          string
	ConfirmationPath string
	// FailurePath, when set, replaces ConfirmationPath after a failed delivery.
	FailurePath     string
	EmailPolicy     EmailPolicy
	ReplyToSender   bool
	DeliveryTimeout time.Duration
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if _, err := mail.ParseAddress(s.Recipient); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", s.Recipient, err)
	}
	if strings.ContainsAny(s.Subject, "\r\n") {
		return fmt.Errorf("subject must be a single line")
	}
	if s.ConfirmationPath == "" {
		return fmt.Errorf("confirmation path is required")
	}
	switch s.EmailPolicy {
	case EmailPolicyPermissive, EmailPolicyStrict:
	default:
		return fmt.Errorf("unknown email policy %q", s.EmailPolicy)
	}
	if s.DeliveryTimeout < 0 {
		return fmt.Errorf("delivery timeout must not be negative")
	}
	return nil
}

package contact

import (
	"fmt"
	"strings"
)

// Submission is the name/email/message triple taken from one form post.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

const (
	nameLabel    = "From: "
	emailLabel   = "\n\nE-Mail: "
	messageLabel = "\n\nMessage:\n\n"
)

// ComposeBody renders the plain-text email body. Blocks always appear in the
// order name, email, message.
func ComposeBody(s Submission) string {
	var b strings.Builder
	b.Grow(len(nameLabel) + len(emailLabel) + len(messageLabel) + len(s.Name) + len(s.Email) + len(s.Message))
	b.WriteString(nameLabel)
	b.WriteString(s.Name)
	b.WriteString(emailLabel)
	b.WriteString(s.Email)
	b.WriteString(messageLabel)
	b.WriteString(s.Message)
	return b.String()
}

// ParseBody is the inverse of ComposeBody for sanitized submissions, whose
// name and email never contain line breaks.
func ParseBody(body string) (Submission, error) {
	rest, ok := strings.CutPrefix(body, nameLabel)
	if !ok {
		return Submission{}, fmt.Errorf("%w: missing name block", ErrMalformedBody)
	}
	name, rest, ok := strings.Cut(rest, emailLabel)
	if !ok {
		return Submission{}, fmt.Errorf("%w: missing email block", ErrMalformedBody)
	}
	email, message, ok := strings.Cut(rest, messageLabel)
	if !ok {
		return Submission{}, fmt.Errorf("%w: missing message block", ErrMalformedBody)
	}
	return Submission{Name: name, Email: email, Message: message}, nil
}

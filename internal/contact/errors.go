package contact

import "errors"

// Sentinel errors for the contact service
var (
	ErrNotSubmitted  = errors.New("form was not submitted")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrMalformedBody = errors.New("malformed message body")
)

package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/contactrelay/internal/api/sanitization"
)

func TestComposeBodyLayout(t *testing.T) {
	body := ComposeBody(Submission{Name: "Ann", Email: "ann@example.com", Message: "Hi there"})
	assert.Equal(t, "From: Ann\n\nE-Mail: ann@example.com\n\nMessage:\n\nHi there", body)

	nameAt := strings.Index(body, "Ann")
	emailAt := strings.Index(body, "ann@example.com")
	messageAt := strings.Index(body, "Hi there")
	assert.True(t, nameAt < emailAt && emailAt < messageAt, "blocks out of order")
}

func TestComposeBodyEmptyEmail(t *testing.T) {
	body := ComposeBody(Submission{Name: "Ann", Message: "Hi"})
	assert.Contains(t, body, "E-Mail: \n\n")
}

func TestParseBodyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
	}{
		{"plain", Submission{Name: "Ann", Email: "ann@example.com", Message: "Hello"}},
		{"newlines", Submission{Name: "Ann", Email: "ann@example.com", Message: "line one\nline two\n\n\nline five"}},
		{"quotes", Submission{Name: `Ann "Annie" O'Neil`, Email: "ann@example.com", Message: `She said "it's fine" & left`}},
		{"labels inside message", Submission{Name: "Ann", Email: "", Message: "E-Mail: fake\n\nMessage:\n\nnested"}},
		{"empty message", Submission{Name: "Ann", Email: "ann@example.com"}},
		{"unicode", Submission{Name: "Zoë", Email: "zoe@example.com", Message: "Grüße 👋\n\tindented"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBody(ComposeBody(tt.sub))
			require.NoError(t, err)
			assert.Equal(t, tt.sub, got)
		})
	}
}

func TestParseBodyRoundTripAfterSanitizing(t *testing.T) {
	raw := "First line\r\nSecond \"quoted\" line\r\n\r\nIt's <b>bold</b> & done"
	sub := Submission{
		Name:    sanitization.SanitizeName("Ann\nSmith"),
		Email:   "ann@example.com",
		Message: sanitization.SanitizeMessage(raw),
	}

	got, err := ParseBody(ComposeBody(sub))
	require.NoError(t, err)
	assert.Equal(t, "First line\nSecond \"quoted\" line\n\nIt's bold & done", got.Message)
	assert.Equal(t, "Ann Smith", got.Name)
}

func TestParseBodyMalformed(t *testing.T) {
	for _, body := range []string{
		"",
		"Name: Ann",
		"From: Ann\nE-Mail: x",
		"From: Ann\n\nE-Mail: x\n\nMsg: y",
	} {
		_, err := ParseBody(body)
		assert.ErrorIs(t, err, ErrMalformedBody, body)
	}
}

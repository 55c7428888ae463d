package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa911/contactrelay/internal/logging"
)

func TestNewSelectsTransport(t *testing.T) {
	logger := logging.New(&bytes.Buffer{}, logging.LevelInfo)

	s, err := New(Options{Transport: TransportLog}, logger)
	require.NoError(t, err)
	assert.Equal(t, TransportLog, s.Name())

	s, err = New(Options{
		Transport: TransportSMTP,
		From:      "site@example.com",
		Timeout:   time.Second,
		SMTP:      SMTPOptions{Host: "localhost", Port: 2525},
	}, logger)
	require.NoError(t, err)
	assert.Equal(t, TransportSMTP, s.Name())

	_, err = New(Options{Transport: "pigeon"}, logger)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(Options{Transport: TransportTelegram}, logger)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewSMTPSenderValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    SMTPOptions
		wantErr bool
	}{
		{"ok", SMTPOptions{Host: "mx", From: "a@example.com"}, false},
		{"auth and ssl", SMTPOptions{Host: "mx", Port: 465, SSL: true, Username: "u", Password: "p", From: "a@example.com"}, false},
		{"no host", SMTPOptions{From: "a@example.com"}, true},
		{"no from", SMTPOptions{Host: "mx"}, true},
		{"bad policy", SMTPOptions{Host: "mx", From: "a@example.com", TLSPolicy: "sometimes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSMTPSender(tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotConfigured)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSMTPSenderBuildMsg(t *testing.T) {
	s, err := NewSMTPSender(SMTPOptions{Host: "mx", From: "site@example.com"})
	require.NoError(t, err)

	m, err := s.buildMsg(Message{
		To:      "owner@example.com",
		Subject: "Website Contact",
		Body:    "From: Ann",
		ReplyTo: "ann@example.com",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "owner@example.com")
	assert.Contains(t, raw, "Subject: Website Contact")
	assert.Contains(t, raw, "Reply-To:")
	assert.Contains(t, raw, "ann@example.com")
	assert.Contains(t, raw, "text/plain")

	_, err = s.buildMsg(Message{To: "not an address"})
	assert.Error(t, err)
}

func TestSMTPSenderReportsDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s, err := NewSMTPSender(SMTPOptions{
		Host:      "127.0.0.1",
		Port:      port,
		From:      "site@example.com",
		TLSPolicy: "none",
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)

	_, err = s.Send(context.Background(), Message{To: "owner@example.com", Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logging.New(&buf, logging.LevelInfo))

	receipt, err := s.Send(context.Background(), Message{To: "owner@example.com", Subject: "hello", Body: "body text"})
	require.NoError(t, err)
	assert.Equal(t, TransportLog, receipt.Transport)
	assert.NotEmpty(t, receipt.ID)
	assert.Contains(t, buf.String(), "owner@example.com")
	assert.Contains(t, buf.String(), "body text")
}

func TestTelegramText(t *testing.T) {
	text := telegramText(Message{Subject: "Website Contact", Body: "From: Ann", ReplyTo: "ann@example.com"})
	assert.Equal(t, "Website Contact\n\nFrom: Ann\n\nReply-To: ann@example.com", text)

	long := telegramText(Message{Subject: "s", Body: strings.Repeat("é", 5000)})
	assert.Equal(t, telegramMaxText, len([]rune(long)))
	assert.True(t, strings.HasSuffix(long, "…"))
}

func newFakeTelegram(t *testing.T, sendOK bool) (*httptest.Server, *[]string) {
	t.Helper()
	var texts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			json.NewEncoder(w).Encode(map[string]any{
				"ok":     true,
				"result": map[string]any{"id": 1, "is_bot": true, "first_name": "relay", "username": "relay_bot"},
			})
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			texts = append(texts, r.PostForm.Get("text"))
			if !sendOK {
				json.NewEncoder(w).Encode(map[string]any{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"ok": true,
				"result": map[string]any{
					"message_id": 42,
					"date":       0,
					"chat":       map[string]any{"id": 99, "type": "private"},
					"text":       r.PostForm.Get("text"),
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &texts
}

func TestTelegramSenderSend(t *testing.T) {
	srv, texts := newFakeTelegram(t, true)

	s, err := NewTelegramSender(TelegramOptions{
		BotToken: "123:abc",
		ChatID:   99,
		Endpoint: srv.URL + "/bot%s/%s",
	})
	require.NoError(t, err)

	receipt, err := s.Send(context.Background(), Message{Subject: "Website Contact", Body: "From: Ann"})
	require.NoError(t, err)
	assert.Equal(t, Receipt{Transport: TransportTelegram, ID: "42"}, receipt)
	require.Len(t, *texts, 1)
	assert.Equal(t, "Website Contact\n\nFrom: Ann", (*texts)[0])
}

func TestTelegramSenderFailure(t *testing.T) {
	srv, _ := newFakeTelegram(t, false)

	s, err := NewTelegramSender(TelegramOptions{BotToken: "123:abc", ChatID: 99, Endpoint: srv.URL + "/bot%s/%s"})
	require.NoError(t, err)

	_, err = s.Send(context.Background(), Message{Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, ErrDelivery)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Send(ctx, Message{Subject: "s", Body: "b"})
	assert.True(t, errors.Is(err, ErrDelivery) && errors.Is(err, context.Canceled))
}

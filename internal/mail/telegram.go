package mail

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages longer than this many characters.
const telegramMaxText = 4096

// TelegramOptions configures TelegramSender.
type TelegramOptions struct {
	BotToken string
	ChatID   int64
	Timeout  time.Duration
	// Endpoint overrides tgbotapi.APIEndpoint; it must keep the two %s verbs.
	Endpoint string
}

// TelegramSender relays contact messages into a fixed Telegram chat.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSender creates the bot client. The constructor calls getMe, so
// a bad token fails at startup rather than on the first submission.
func NewTelegramSender(opts TelegramOptions) (*TelegramSender, error) {
	if opts.BotToken == "" || opts.ChatID == 0 {
		return nil, fmt.Errorf("%w: telegram bot token or chat ID not configured", ErrNotConfigured)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	bot, err := tgbotapi.NewBotAPIWithClient(opts.BotToken, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramSender{bot: bot, chatID: opts.ChatID}, nil
}

func (s *TelegramSender) Name() string { return TransportTelegram }

// Send posts the subject and body as one plain-text chat message. The
// recipient address has no meaning on this transport and is ignored.
func (s *TelegramSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, deliveryError(TransportTelegram, err)
	}

	out := tgbotapi.NewMessage(s.chatID, telegramText(msg))
	sent, err := s.bot.Send(out)
	if err != nil {
		return Receipt{}, deliveryError(TransportTelegram, err)
	}

	return Receipt{Transport: TransportTelegram, ID: strconv.Itoa(sent.MessageID)}, nil
}

func telegramText(msg Message) string {
	text := msg.Subject + "\n\n" + msg.Body
	if msg.ReplyTo != "" {
		text += "\n\nReply-To: " + msg.ReplyTo
	}

	runes := []rune(text)
	if len(runes) > telegramMaxText {
		text = string(runes[:telegramMaxText-1]) + "…"
	}
	return text
}

package mail

import (
	"context"

	"github.com/google/uuid"

	"github.com/osa911/contactrelay/internal/logging"
)

// LogSender writes messages to the logger instead of delivering them.
// Intended for local development.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return TransportLog }

func (s *LogSender) Send(_ context.Context, msg Message) (Receipt, error) {
	id := uuid.NewString()
	s.logger.Info("[mail:%s] to=%s subject=%q reply_to=%q\n%s", id, msg.To, msg.Subject, msg.ReplyTo, msg.Body)
	return Receipt{Transport: TransportLog, ID: id}, nil
}

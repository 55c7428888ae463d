// Package mailtest provides an in-memory mail.Sender for tests.
package mailtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/osa911/contactrelay/internal/mail"
)

// Recorder stores every message it is asked to send. When Err is set, Send
// records the attempt and returns Err wrapped in mail.ErrDelivery.
type Recorder struct {
	mu       sync.Mutex
	messages []mail.Message
	Err      error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) Send(_ context.Context, msg mail.Message) (mail.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)
	if r.Err != nil {
		return mail.Receipt{}, fmt.Errorf("%w: %w", mail.ErrDelivery, r.Err)
	}
	return mail.Receipt{Transport: r.Name(), ID: fmt.Sprintf("msg-%d", len(r.messages))}, nil
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mail.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

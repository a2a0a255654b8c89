package messaging

import (
	"context"

	"github.com/djobea/djobea-ai/pkg/logging"
)

// Channel identifies the transport an outbound message uses.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// Outbound carries the data required to push a message to a recipient.
type Outbound struct {
	To       string
	From     string
	Body     string
	Channel  Channel
	Metadata map[string]string
}

// Sender delivers outbound messages. Any error return is treated uniformly
// as a channel failure by callers; error subtypes carry no meaning for the
// fallback ladder.
type Sender interface {
	Send(ctx context.Context, msg Outbound) error
}

// StubSender logs messages without sending them, for development and tests.
type StubSender struct {
	logger *logging.Logger
}

// NewStubSender creates a stub sender.
func NewStubSender(logger *logging.Logger) *StubSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSender{logger: logger}
}

var _ Sender = (*StubSender)(nil)

// Send logs the message and reports success.
func (s *StubSender) Send(ctx context.Context, msg Outbound) error {
	s.logger.Info("stub sender: would send message",
		"to", msg.To, "channel", msg.Channel, "chars", len(msg.Body))
	return nil
}

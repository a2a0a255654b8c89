package conversation

import (
	"context"
	"time"
)

// Channel identifies which transport the conversation is happening on.
type Channel string

const (
	ChannelUnknown  Channel = ""
	ChannelWhatsApp Channel = "whatsapp"
	ChannelWeb      Channel = "web"
)

// Input is one inbound user turn.
type Input struct {
	UserID      string  `json:"user_id"` // phone number in E.164
	Text        string  `json:"text"`
	ButtonValue string  `json:"button_value,omitempty"`
	Channel     Channel `json:"channel,omitempty"`
	// MessageID deduplicates webhook redeliveries of the same message.
	MessageID string `json:"message_id,omitempty"`
}

// Button is a quick-reply choice attached to an outbound message.
type Button struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Reply is what one conversation turn produces.
type Reply struct {
	Text      string       `json:"text"`
	Buttons   []Button     `json:"buttons,omitempty"`
	State     State        `json:"state"`
	Action    SystemAction `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
}

// Processor runs one conversation turn. Implemented by the engine and by the
// queue-backed dispatcher that fronts it.
type Processor interface {
	ProcessMessage(ctx context.Context, in Input) (*Reply, error)
}

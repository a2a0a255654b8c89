package conversation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/djobea/djobea-ai/pkg/logging"
)

// Handler wires inbound webhooks to the conversation processor.
type Handler struct {
	processor Processor
	logger    *logging.Logger
}

// NewHandler creates a conversation webhook handler.
func NewHandler(processor Processor, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{processor: processor, logger: logger.Named("conversation.handler")}
}

// WhatsAppWebhook handles POST /webhooks/whatsapp. Twilio delivers inbound
// messages as form posts; the reply is returned as TwiML so Twilio sends it
// back on the same conversation.
func (h *Handler) WhatsAppWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse webhook form", "error", err)
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	from := strings.TrimPrefix(r.PostFormValue("From"), "whatsapp:")
	body := r.PostFormValue("Body")
	buttonValue := r.PostFormValue("ButtonPayload")
	if buttonValue == "" {
		buttonValue = r.PostFormValue("ButtonText")
	}
	messageID := r.PostFormValue("MessageSid")

	if from == "" {
		http.Error(w, "Missing sender", http.StatusBadRequest)
		return
	}

	reply, err := h.processor.ProcessMessage(r.Context(), Input{
		UserID:      from,
		Text:        body,
		ButtonValue: buttonValue,
		Channel:     ChannelWhatsApp,
		MessageID:   messageID,
	})
	if err != nil {
		h.logger.Error("turn processing failed", "from", from, "error", err)
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	h.writeTwiML(w, reply)
}

// ChatMessage handles POST /chat/message for the web channel. Body and reply
// are JSON.
func (h *Handler) ChatMessage(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Error("failed to decode chat message", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if in.Channel == ChannelUnknown {
		in.Channel = ChannelWeb
	}

	reply, err := h.processor.ProcessMessage(r.Context(), in)
	if err != nil {
		h.logger.Error("turn processing failed", "user_id", in.UserID, "error", err)
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, reply)
}

// writeTwiML renders the reply in Twilio's response format. Buttons are
// appended as a numbered list since plain TwiML has no interactive elements.
func (h *Handler) writeTwiML(w http.ResponseWriter, reply *Reply) {
	text := reply.Text
	if len(reply.Buttons) > 0 {
		var b strings.Builder
		b.WriteString(text)
		b.WriteString("\n")
		for i, btn := range reply.Buttons {
			fmt.Fprintf(&b, "\n%d. %s", i+1, btn.Label)
		}
		text = b.String()
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Response><Message>%s</Message></Response>`, xmlEscape(text))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}

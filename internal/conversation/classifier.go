package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// Intent is the validated output of the LLM classifier.
type Intent struct {
	Action      SystemAction
	State       State
	ServiceType string
	Location    string
	Description string
	Urgent      bool
	Confidence  float64
}

// IntentClassifier resolves messages the keyword heuristics could not parse.
type IntentClassifier interface {
	Classify(ctx context.Context, state State, message string) (Intent, error)
}

// ClassifierConfig configures the LLM classifier pass.
type ClassifierConfig struct {
	Model       string
	Timeout     time.Duration
	MaxTokens   int32
	Temperature float32
}

// LLMIntentClassifier runs a lightweight LLM pass over unparseable messages.
type LLMIntentClassifier struct {
	client      LLMClient
	model       string
	timeout     time.Duration
	maxTokens   int32
	temperature float32
	logger      *logging.Logger
}

const classifierSystemPrompt = `Tu es le classifieur d'intentions de Djobea, un assistant WhatsApp qui met en relation des clients de Douala avec des prestataires (plomberie, électricité, électroménager).

Analyse le message du client et retourne UNIQUEMENT un JSON de ce format exact :
{"action":"send_message|create_request|cancel_request|update_request|search_providers|escalate_to_human|request_clarification","state":"INITIAL|SERVICE_SELECTION|LOCATION_INPUT|DESCRIPTION_INPUT|URGENCY_SELECTION|CONFIRMATION|CANCELLATION_CONFIRM|MODIFICATION_SELECTION|PAYMENT_SELECTION|COMPLETED","service_type":"","location":"","description":"","urgent":false,"confidence":0.0}

Règles :
- service_type doit être "plomberie", "électricité", "électroménager" ou vide.
- location est le quartier ou point de repère de Douala mentionné, sinon vide.
- urgent est true seulement si le client exprime une urgence claire.
- En cas de doute, action "request_clarification".`

// NewLLMIntentClassifier constructs the Gemini-backed classifier.
func NewLLMIntentClassifier(client LLMClient, cfg ClassifierConfig, logger *logging.Logger) *LLMIntentClassifier {
	if client == nil {
		panic("conversation: classifier llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &LLMIntentClassifier{
		client:      client,
		model:       cfg.Model,
		timeout:     timeout,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		logger:      logger.Named("conversation.classifier"),
	}
}

var _ IntentClassifier = (*LLMIntentClassifier)(nil)

// Classify sends the message to the LLM and validates the structured answer.
func (c *LLMIntentClassifier) Classify(ctx context.Context, state State, message string) (Intent, error) {
	classifyCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf("État actuel de la conversation : %s\nMessage du client :\n%s\n", state, strings.TrimSpace(message))
	resp, err := c.client.Complete(classifyCtx, LLMRequest{
		Model:  c.model,
		System: []string{classifierSystemPrompt},
		Messages: []ChatMessage{
			{Role: ChatRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return Intent{}, err
	}
	return c.parseIntent(resp.Text)
}

type intentPayload struct {
	Action      string  `json:"action"`
	State       string  `json:"state"`
	ServiceType string  `json:"service_type"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Urgent      bool    `json:"urgent"`
	Confidence  float64 `json:"confidence"`
}

// parseIntent sanitizes the raw model output and clamps every enum field: an
// unknown action becomes request_clarification and an unknown state becomes
// INITIAL, each with a logged anomaly.
func (c *LLMIntentClassifier) parseIntent(raw string) (Intent, error) {
	text := sanitizeIntentJSON(raw)
	if text == "" {
		return Intent{}, errors.New("conversation: classifier empty response")
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return Intent{}, fmt.Errorf("conversation: classifier returned invalid JSON: %w", err)
	}

	action, ok := NormalizeAction(payload.Action)
	if !ok {
		c.logger.Warn("classifier returned unknown action, clamped",
			"raw_action", payload.Action)
	}
	state, ok := NormalizeState(payload.State)
	if !ok {
		c.logger.Warn("classifier returned unknown state, clamped",
			"raw_state", payload.State)
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	service := strings.ToLower(strings.TrimSpace(payload.ServiceType))
	if service != "" && !requests.IsSupportedService(service) {
		c.logger.Warn("classifier returned unknown service, dropped", "raw_service", service)
		service = ""
	}

	return Intent{
		Action:      action,
		State:       state,
		ServiceType: service,
		Location:    strings.TrimSpace(payload.Location),
		Description: strings.TrimSpace(payload.Description),
		Urgent:      payload.Urgent,
		Confidence:  confidence,
	}, nil
}

func sanitizeIntentJSON(raw string) string {
	text := stripCodeFence(raw)
	text = extractJSONObject(text)
	return strings.TrimSpace(text)
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func extractJSONObject(text string) string {
	if strings.HasPrefix(text, "{") {
		return text
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

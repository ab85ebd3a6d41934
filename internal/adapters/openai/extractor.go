// Package openai implements the slot extractor against a chat-completion
// service. The model is held to a strict JSON schema: anything that fails to
// parse surfaces as an extraction failure, never as silently empty fields.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bolibazaar/bolibazaar/internal/logging"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/language"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
)

// slotSchema constrains the model's response to the exact slot shape.
const slotSchema = `{
	"type": "object",
	"additionalProperties": false,
	"required": ["commodity", "quantity", "unit", "price", "ask_market_price", "currency", "grade", "origin", "confirmed", "localized_reply"],
	"properties": {
		"commodity": {"type": ["string", "null"], "description": "The produce being sold, in the user's words"},
		"quantity": {"type": ["string", "null"], "description": "Amount as stated, digits or number words"},
		"unit": {"type": ["string", "null"], "description": "Unit of the quantity, e.g. kg, quintal"},
		"price": {"type": ["number", "null"], "description": "Asking price per unit, if stated"},
		"ask_market_price": {"type": "boolean", "description": "True when the user wants the market rate instead of naming a price"},
		"currency": {"type": ["string", "null"], "description": "ISO 4217 code if the user named a currency"},
		"grade": {"type": ["string", "null"], "description": "Quality grade such as A, B, C"},
		"origin": {"type": ["string", "null"], "description": "Where the produce comes from"},
		"confirmed": {"type": ["boolean", "null"], "description": "Yes/no answer when the assistant asked for confirmation"},
		"localized_reply": {"type": "string", "description": "A short reply to the user in their language"}
	}
}`

// Completer is the minimal surface this adapter needs from the OpenAI client,
// split out so tests can stub the remote call.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Extractor implements ports.SlotExtractor.
type Extractor struct {
	client   Completer
	model    string
	registry *language.Registry
	logger   *slog.Logger
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithLogger sets the extractor logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// WithCompleter replaces the chat-completion client (tests).
func WithCompleter(c Completer) Option {
	return func(e *Extractor) { e.client = c }
}

// New creates an extractor against the configured completion endpoint.
func New(apiKey, baseURL, model string, registry *language.Registry, opts ...Option) *Extractor {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	e := &Extractor{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		registry: registry,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract sends the session context plus the new utterance to the completion
// service and normalizes the schema-constrained answer into partial slots.
func (e *Extractor) Extract(ctx context.Context, session *domain.Session, utterance string) (*ports.ExtractionResult, error) {
	profile, err := e.registry.Get(session.Language)
	if err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: e.systemPrompt(profile, session)},
			{Role: openai.ChatMessageRoleUser, Content: utterance},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "slot_extraction",
				Schema: json.RawMessage(slotSchema),
				Strict: true,
			},
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	result, err := Normalize(profile, resp.Choices[0].Message.Content)
	if err != nil {
		e.logger.Warn("model output failed normalization",
			"session_id", session.ID, "stage", session.Stage, "err", err)
		return nil, err
	}
	return result, nil
}

// systemPrompt describes the task and the dialogue context. Prior slots are
// included so the model interprets follow-up turns correctly.
func (e *Extractor) systemPrompt(profile *language.Profile, session *domain.Session) string {
	var b strings.Builder
	b.WriteString("You extract structured listing attributes from a farmer's spoken message.\n")
	fmt.Fprintf(&b, "The user speaks %s (code %s). Reply to them in that language.\n", profile.Name, profile.Code)
	fmt.Fprintf(&b, "Dialogue stage: %s.\n", session.Stage)

	if prior, err := json.Marshal(session.Slots); err == nil {
		fmt.Fprintf(&b, "Slots collected so far: %s\n", prior)
	}

	b.WriteString("Fill only the fields the new message actually states; leave the rest null.\n")
	b.WriteString("Set ask_market_price to true only if the user wants the market rate instead of naming a price.\n")
	if session.Stage == domain.StageConfirmingListing {
		b.WriteString("The assistant just asked the user to confirm the listing; set confirmed from their answer.\n")
	}
	return b.String()
}

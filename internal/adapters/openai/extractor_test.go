package openai_test

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/bolibazaar/bolibazaar/internal/adapters/openai"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/language"
)

// stubCompleter records the request and returns a canned completion.
type stubCompleter struct {
	req     openai.ChatCompletionRequest
	content string
	err     error
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.req = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestExtractor_Extract(t *testing.T) {
	stub := &stubCompleter{
		content: `{"commodity": "प्याज", "quantity": "सौ", "unit": "किलो", "price": null, "ask_market_price": false, "currency": null, "grade": null, "origin": null, "confirmed": null, "localized_reply": "ठीक है।"}`,
	}
	registry := language.MustRegistry()
	extractor := adapter.New("test-key", "", "gpt-4o-mini", registry, adapter.WithCompleter(stub))

	session := domain.NewSession("sess-1", "hi")
	session.Stage = domain.StageCollectingCommodity

	res, err := extractor.Extract(context.Background(), session, "मेरे पास सौ किलो प्याज है")
	require.NoError(t, err)

	assert.Equal(t, "onion", res.Slots.Commodity)
	require.NotNil(t, res.Slots.QuantityKg)
	assert.Equal(t, 100.0, *res.Slots.QuantityKg)
	assert.Equal(t, "ठीक है।", res.Reply)

	// The request pins the model to the strict slot schema.
	require.NotNil(t, stub.req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, stub.req.ResponseFormat.Type)
	require.NotNil(t, stub.req.ResponseFormat.JSONSchema)
	assert.Equal(t, "slot_extraction", stub.req.ResponseFormat.JSONSchema.Name)
	assert.True(t, stub.req.ResponseFormat.JSONSchema.Strict)

	// System prompt carries language and stage context; the utterance rides as
	// the user message.
	require.Len(t, stub.req.Messages, 2)
	assert.Contains(t, stub.req.Messages[0].Content, "hi")
	assert.Contains(t, stub.req.Messages[0].Content, string(domain.StageCollectingCommodity))
	assert.Equal(t, "मेरे पास सौ किलो प्याज है", stub.req.Messages[1].Content)
}

func TestExtractor_CompletionFailure(t *testing.T) {
	stub := &stubCompleter{err: errors.New("upstream 500")}
	extractor := adapter.New("test-key", "", "gpt-4o-mini", language.MustRegistry(), adapter.WithCompleter(stub))

	_, err := extractor.Extract(context.Background(), domain.NewSession("sess-1", "en"), "hello")
	assert.Error(t, err)
}

func TestExtractor_UnsupportedSessionLanguage(t *testing.T) {
	stub := &stubCompleter{content: `{}`}
	extractor := adapter.New("test-key", "", "gpt-4o-mini", language.MustRegistry(), adapter.WithCompleter(stub))

	_, err := extractor.Extract(context.Background(), domain.NewSession("sess-1", "xx"), "hello")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

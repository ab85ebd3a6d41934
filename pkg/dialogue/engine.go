// Package dialogue implements the multi-turn state machine that turns
// free-form utterances into a validated listing. The engine itself is
// stateless: every call takes the full session, so a session can be captured
// after any turn and reconstructed later.
package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/bolibazaar/bolibazaar/internal/logging"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/language"
	"github.com/bolibazaar/bolibazaar/pkg/listing"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
)

// Result is the outcome of one dialogue turn.
type Result struct {
	Session *domain.Session
	Reply   string
	Stage   domain.Stage

	// Listing is set once the user confirms and validation passes.
	Listing *domain.Listing
}

// Engine orchestrates dialogue turns against a slot extractor.
type Engine struct {
	registry  *language.Registry
	extractor ports.SlotExtractor
	oracle    ports.PriceOracle
	logger    *slog.Logger

	maxRetries      uint64
	retryInterval   time.Duration
	defaultCurrency string
	newID           func() string
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithOracle provides the market price oracle used to render the
// showing_market_prices reply.
func WithOracle(oracle ports.PriceOracle) Option {
	return func(e *Engine) { e.oracle = oracle }
}

// WithExtractionRetry bounds the retry policy for failed extractions.
func WithExtractionRetry(maxRetries int, initialInterval time.Duration) Option {
	return func(e *Engine) {
		if maxRetries >= 0 {
			e.maxRetries = uint64(maxRetries)
		}
		if initialInterval > 0 {
			e.retryInterval = initialInterval
		}
	}
}

// WithDefaultCurrency overrides the currency applied when the user never
// stated one.
func WithDefaultCurrency(code string) Option {
	return func(e *Engine) {
		if code != "" {
			e.defaultCurrency = code
		}
	}
}

// WithIDGenerator overrides listing/session id generation (tests).
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine creates a dialogue engine.
func NewEngine(registry *language.Registry, extractor ports.SlotExtractor, opts ...Option) *Engine {
	e := &Engine{
		registry:        registry,
		extractor:       extractor,
		logger:          logging.NewNop(),
		maxRetries:      3,
		retryInterval:   200 * time.Millisecond,
		defaultCurrency: "INR",
		newID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start creates a new session in the requested language and returns it along
// with the localized greeting. No session is created for an unknown code.
func (e *Engine) Start(ctx context.Context, languageCode string) (*domain.Session, string, error) {
	profile, err := e.registry.Get(languageCode)
	if err != nil {
		return nil, "", err
	}

	session := domain.NewSession(e.newID(), profile.Code)
	session.Turns = append(session.Turns, domain.Turn{
		Role:      "assistant",
		Text:      profile.Greeting,
		Stage:     domain.StageGreeting,
		Timestamp: time.Now().UTC(),
	})

	e.logger.Info("session started", "session_id", session.ID, "language", profile.Code)
	return session, profile.Greeting, nil
}

// Advance processes one user utterance: extract partial slots, merge them,
// resolve the next stage from the transition table, and compose the localized
// reply. The input session is not mutated; the updated copy is returned.
func (e *Engine) Advance(ctx context.Context, session *domain.Session, utterance string) (*Result, error) {
	if session.Stage.Terminal() {
		return nil, fmt.Errorf("session %s: %w", session.ID, domain.ErrSessionTerminated)
	}
	profile, err := e.registry.Get(session.Language)
	if err != nil {
		return nil, err
	}

	next := session.Clone()
	now := time.Now().UTC()
	next.Turns = append(next.Turns, domain.Turn{
		Role: "user", Text: utterance, Stage: next.Stage, Timestamp: now,
	})

	// A broadcast is already in flight. Finalization must happen exactly once,
	// on the transition out of confirmation, so this turn only echoes the wait
	// prompt until FinishBroadcast resolves the session.
	if next.Stage == domain.StageBroadcasting {
		return e.finishTurn(next, profile, domain.StageBroadcasting, profile.Prompt(domain.StageBroadcasting)), nil
	}

	extracted, err := e.extract(ctx, next, utterance)
	if err != nil {
		// Degraded path: we never guess. Re-prompt the user in their language
		// for the stage we were already in.
		e.logger.Warn("extraction exhausted retries, re-prompting",
			"session_id", next.ID, "stage", next.Stage, "err", err)
		return e.finishTurn(next, profile, next.Stage, profile.Reprompt), nil
	}

	next.Slots.Merge(extracted.Slots)
	e.resolveCommodity(profile, &next.Slots)

	target := nextStage(next.Stage, presence(next.Slots), extracted.Confirmed)

	var finalized *domain.Listing
	if target == domain.StageConfirmingListing || target == domain.StageBroadcasting {
		validated, fieldErrs := listing.Validate(next.Slots, e.defaultCurrency)
		if len(fieldErrs) > 0 {
			// Jump back to the stage owning the first missing field with a
			// localized clarification instead of aborting.
			first := fieldErrs[0]
			target = stageForField(first.Field)
			e.logger.Debug("validation failed, clarifying",
				"session_id", next.ID, "field", first.Field, "stage", target)
			return e.finishTurn(next, profile, target, profile.ClarifyFor(first.Field)), nil
		}
		if target == domain.StageBroadcasting {
			validated.ID = e.newID()
			validated.SessionID = next.ID
			validated.CreatedAt = time.Now().UTC()
			finalized = validated
		}
	}

	reply := e.composeReply(ctx, profile, next, target, extracted.Reply)
	result := e.finishTurn(next, profile, target, reply)
	result.Listing = finalized
	return result, nil
}

// FinishBroadcast moves a broadcasting session to its final stage. A failed
// broadcast returns to confirmation so the user can retry or abort.
func (e *Engine) FinishBroadcast(session *domain.Session, outcome domain.Outcome) *domain.Session {
	next := session.Clone()
	if outcome == domain.OutcomeSuccess {
		next.Stage = domain.StageSuccess
	} else {
		next.Stage = domain.StageConfirmingListing
	}
	next.UpdatedAt = time.Now().UTC()
	return next
}

func (e *Engine) extract(ctx context.Context, session *domain.Session, utterance string) (*ports.ExtractionResult, error) {
	var result *ports.ExtractionResult

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.retryInterval

	op := func() error {
		var err error
		result, err = e.extractor.Extract(ctx, session, utterance)
		return err
	}

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, e.maxRetries), ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return result, nil
}

// resolveCommodity runs the session's synonym table over whatever commodity
// text is present. Unresolved text passes through with the low-confidence flag.
func (e *Engine) resolveCommodity(profile *language.Profile, slots *domain.Slots) {
	raw := slots.Commodity
	if raw == "" {
		raw = slots.CommodityRaw
	}
	if raw == "" {
		return
	}
	canonical, ok := profile.ResolveCommodity(raw)
	if ok {
		slots.Commodity = canonical
		slots.LowConfidence = false
		return
	}
	slots.Commodity = ""
	slots.CommodityRaw = raw
	slots.LowConfidence = true
}

func (e *Engine) composeReply(ctx context.Context, profile *language.Profile, session *domain.Session, target domain.Stage, extractorReply string) string {
	switch target {
	case domain.StageShowingMarketPrices:
		if line := e.marketPriceLine(ctx, profile, session); line != "" {
			return line
		}
	case domain.StageConfirmingListing:
		return e.confirmLine(profile, session.Slots)
	}
	if extractorReply != "" {
		return extractorReply
	}
	return profile.Prompt(target)
}

func (e *Engine) marketPriceLine(ctx context.Context, profile *language.Profile, session *domain.Session) string {
	if e.oracle == nil {
		return ""
	}
	quote, err := e.oracle.Quote(ctx, session.Slots.Commodity, session.Slots.Origin)
	if err != nil {
		e.logger.Warn("market quote unavailable", "commodity", session.Slots.Commodity, "err", err)
		return ""
	}
	currency := session.Slots.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}
	return fmt.Sprintf(profile.MarketPriceLine, session.Slots.Commodity, quote.Min, quote.Max, currency, quote.Avg)
}

func (e *Engine) confirmLine(profile *language.Profile, slots domain.Slots) string {
	pricePhrase := profile.PriceAtMarket
	if !slots.MarketQuote && slots.Price != nil {
		currency := slots.Currency
		if currency == "" {
			currency = e.defaultCurrency
		}
		pricePhrase = fmt.Sprintf("@ %.0f %s/%s", *slots.Price, currency, slots.Unit)
	}
	var qty float64
	if slots.QuantityKg != nil {
		qty = *slots.QuantityKg
	}
	unit := slots.Unit
	if unit == "" {
		unit = "kg"
	}
	return fmt.Sprintf(profile.ConfirmLine, qty, unit, slots.Commodity, pricePhrase)
}

func (e *Engine) finishTurn(session *domain.Session, profile *language.Profile, target domain.Stage, reply string) *Result {
	session.Stage = target
	session.UpdatedAt = time.Now().UTC()
	session.Turns = append(session.Turns, domain.Turn{
		Role: "assistant", Text: reply, Stage: target, Timestamp: session.UpdatedAt,
	})
	return &Result{Session: session, Reply: reply, Stage: target}
}

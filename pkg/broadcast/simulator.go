// Package broadcast simulates how the commerce network answers a validated
// listing: multi-phase latency, chaos failure modes, counterparty selection
// and an adaptive bid price. The simulator always resolves to exactly one
// outcome within its documented upper bound; it never hangs.
package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bolibazaar/bolibazaar/internal/logging"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/pricing"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
)

// Simulator models the counterparty network.
type Simulator struct {
	cfg            Config
	counterparties []domain.Counterparty
	learner        *pricing.Learner
	oracle         ports.PriceOracle
	audit          ports.AuditSink
	rng            Rand
	sleep          func(time.Duration)
	logger         *slog.Logger
	metrics        *Metrics
	newTxID        func() string
}

// Option configures the Simulator.
type Option func(*Simulator)

// WithRand replaces the random source (tests seed this to force outcomes).
func WithRand(rng Rand) Option {
	return func(s *Simulator) { s.rng = rng }
}

// WithSleeper replaces the phase delay function (tests pass a no-op).
func WithSleeper(sleep func(time.Duration)) Option {
	return func(s *Simulator) { s.sleep = sleep }
}

// WithLogger sets the simulator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(s *Simulator) { s.metrics = m }
}

// WithCounterparties overrides the embedded counterparty registry.
func WithCounterparties(list []domain.Counterparty) Option {
	return func(s *Simulator) { s.counterparties = list }
}

// WithTransactionIDs overrides transaction id generation (tests).
func WithTransactionIDs(fn func() string) Option {
	return func(s *Simulator) { s.newTxID = fn }
}

// NewSimulator creates a simulator. The learner, oracle and audit sink are
// required collaborators; counterparties default to the embedded registry.
func NewSimulator(cfg Config, learner *pricing.Learner, oracle ports.PriceOracle, audit ports.AuditSink, opts ...Option) (*Simulator, error) {
	profiles, err := LoadCounterparties()
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		cfg:            cfg,
		counterparties: profiles,
		learner:        learner,
		oracle:         oracle,
		audit:          audit,
		rng:            NewRand(time.Now().UnixNano()),
		sleep:          time.Sleep,
		logger:         logging.NewNop(),
		newTxID:        func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Broadcast runs one simulated network round-trip for a validated listing.
// It always returns the BroadcastEvent that was recorded; the error is a
// *domain.BroadcastError for every non-success outcome. Caller timeouts do
// not shorten the simulation; the phase bounds are the hard ceiling.
func (s *Simulator) Broadcast(ctx context.Context, l *domain.Listing) (*domain.BroadcastEvent, error) {
	txID := s.newTxID()
	started := time.Now().UTC()

	s.emit(ctx, domain.AuditEvent{
		Type:      domain.EventOutgoingListing,
		Payload:   l,
		Timestamp: started,
	})
	s.logger.Info("broadcast started",
		"tx_id", txID, "listing_id", l.ID, "commodity", l.Commodity)

	event := &domain.BroadcastEvent{
		TransactionID: txID,
		ListingID:     l.ID,
		At:            started,
	}

	for _, phase := range s.cfg.Phases {
		spread := phase.Max - phase.Min
		d := phase.Min + time.Duration(s.rng.Float64()*float64(spread))
		s.sleep(d)
		event.Phases = append(event.Phases, domain.PhaseTiming{Name: phase.Name, Duration: d})
		event.Elapsed += d
	}

	if outcome, ok := s.chaosRoll(); ok {
		return s.fail(ctx, event, outcome)
	}

	counterparty, ok := s.pickCounterparty(l.Category)
	if !ok {
		return s.fail(ctx, event, domain.OutcomeNoSellers)
	}

	base := s.basePrice(ctx, l)
	ratio := s.bidRatio(l.Commodity)
	perKg := base * ratio

	bid := &domain.Bid{
		Counterparty: counterparty.Name,
		Reliability:  counterparty.Reliability,
		PerKg:        perKg,
		Amount:       perKg * l.QuantityKg,
		Currency:     l.Currency,
		Ratio:        ratio,
	}
	event.Outcome = domain.OutcomeSuccess
	event.Bid = bid

	stat := s.learner.Observe(l.Commodity, ratio)
	s.emit(ctx, domain.AuditEvent{
		Type:      domain.EventIncomingBid,
		Payload:   event,
		Timestamp: time.Now().UTC(),
	})
	s.observeMetrics(event)

	s.logger.Info("broadcast succeeded",
		"tx_id", txID,
		"counterparty", counterparty.Name,
		"per_kg", perKg,
		"ratio", ratio,
		"learned_ratio", stat.AverageRatio,
		"samples", stat.SampleCount,
		"elapsed", event.Elapsed,
	)
	return event, nil
}

// chaosRoll samples the failure outcomes in fixed priority order. One draw
// decides everything: the outcomes are mutually exclusive by construction.
func (s *Simulator) chaosRoll() (domain.Outcome, bool) {
	roll := s.rng.Float64()
	cumulative := s.cfg.NetworkErrorRate
	if roll < cumulative {
		return domain.OutcomeNetworkError, true
	}
	cumulative += s.cfg.GatewayTimeoutRate
	if roll < cumulative {
		return domain.OutcomeTimeout, true
	}
	cumulative += s.cfg.NoSellersRate
	if roll < cumulative {
		return domain.OutcomeNoSellers, true
	}
	cumulative += s.cfg.RateLimitedRate
	if roll < cumulative {
		return domain.OutcomeRateLimited, true
	}
	return "", false
}

// pickCounterparty chooses uniformly among verified profiles matching the
// listing's category. Unverified profiles are never selected.
func (s *Simulator) pickCounterparty(category string) (domain.Counterparty, bool) {
	var eligible []domain.Counterparty
	for _, c := range s.counterparties {
		if c.Verified && c.Matches(category) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return domain.Counterparty{}, false
	}
	return eligible[s.rng.Intn(len(eligible))], true
}

// basePrice resolves the per-kg base the bid is computed from: the asking
// price, or for market-quote listings the oracle's current average with a
// static fallback when even the oracle is unreachable.
func (s *Simulator) basePrice(ctx context.Context, l *domain.Listing) float64 {
	if !l.MarketQuote {
		return l.Price
	}
	quote, err := s.oracle.Quote(ctx, l.Commodity, l.Origin)
	if err != nil || quote.Avg <= 0 {
		s.logger.Warn("oracle unavailable, using fallback price",
			"commodity", l.Commodity, "err", err)
		return s.cfg.FallbackPrice
	}
	return quote.Avg
}

// bidRatio picks the learned ratio once the commodity is warmed up, or the
// neutral ratio randomized by the warm-up noise before that. Either way the
// result is clamped to the configured bounds.
func (s *Simulator) bidRatio(commodity string) float64 {
	stat := s.learner.Ratio(commodity)
	ratio := stat.AverageRatio
	if stat.SampleCount < s.cfg.WarmupThreshold {
		ratio = 1.0 + (s.rng.Float64()*2-1)*s.cfg.WarmupNoise
	}
	if ratio < s.cfg.MinRatio {
		ratio = s.cfg.MinRatio
	}
	if ratio > s.cfg.MaxRatio {
		ratio = s.cfg.MaxRatio
	}
	return ratio
}

func (s *Simulator) fail(ctx context.Context, event *domain.BroadcastEvent, outcome domain.Outcome) (*domain.BroadcastEvent, error) {
	berr := domain.NewBroadcastError(event.TransactionID, outcome)
	event.Outcome = outcome
	event.Err = berr.Error()

	s.emit(ctx, domain.AuditEvent{
		Type:      domain.EventIncomingBid,
		Payload:   event,
		Timestamp: time.Now().UTC(),
	})
	s.observeMetrics(event)

	s.logger.Warn("broadcast failed",
		"tx_id", event.TransactionID, "outcome", outcome, "elapsed", event.Elapsed)
	return event, berr
}

func (s *Simulator) emit(ctx context.Context, ev domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, ev); err != nil {
		s.logger.Warn("audit emit failed", "type", ev.Type, "err", err)
	}
}

func (s *Simulator) observeMetrics(event *domain.BroadcastEvent) {
	if s.metrics == nil {
		return
	}
	s.metrics.Outcomes.WithLabelValues(string(event.Outcome)).Inc()
	s.metrics.Elapsed.Observe(event.Elapsed.Seconds())
	if event.Bid != nil {
		s.metrics.BidRatio.Observe(event.Bid.Ratio)
	}
}

package domain

import "time"

// Outcome is the single definitive result of one broadcast attempt.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeNetworkError Outcome = "network_error"
	OutcomeTimeout      Outcome = "timeout"
	OutcomeNoSellers    Outcome = "no_sellers"
	OutcomeRateLimited  Outcome = "rate_limited"
)

// Counterparty is a simulated network participant able to answer a broadcast
// with a bid. Profiles are seeded at startup and never mutated.
type Counterparty struct {
	Name        string   `json:"name" yaml:"name"`
	Verified    bool     `json:"verified" yaml:"verified"`
	Reliability int      `json:"reliability" yaml:"reliability"` // 1..5
	Categories  []string `json:"categories" yaml:"categories"`
}

// Matches reports whether the counterparty trades the given category.
// A "*" affinity matches everything.
func (c Counterparty) Matches(category string) bool {
	for _, cat := range c.Categories {
		if cat == "*" || cat == category {
			return true
		}
	}
	return false
}

// Bid is a counterparty's purchase offer for a listing.
type Bid struct {
	Counterparty string  `json:"counterparty"`
	Reliability  int     `json:"reliability"`
	PerKg        float64 `json:"per_kg"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`

	// Ratio is PerKg divided by the listing's base price, after clamping.
	Ratio float64 `json:"ratio"`
}

// PhaseTiming records how long one simulated network phase took.
type PhaseTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// BroadcastEvent is the append-only audit record of one broadcast call.
// Exactly one is created per call, with exactly one outcome.
type BroadcastEvent struct {
	TransactionID string        `json:"transaction_id"`
	ListingID     string        `json:"listing_id"`
	Phases        []PhaseTiming `json:"phases"`
	Elapsed       time.Duration `json:"elapsed"`
	Outcome       Outcome       `json:"outcome"`
	Bid           *Bid          `json:"bid,omitempty"`
	Err           string        `json:"error,omitempty"`
	At            time.Time     `json:"at"`
}

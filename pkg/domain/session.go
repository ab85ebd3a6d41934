package domain

import "time"

// Slots holds the cumulative structured attributes collected from the user.
// Pointer fields distinguish "never stated" from an explicit zero.
type Slots struct {
	// Commodity is the canonical descriptor after synonym resolution.
	Commodity string `json:"commodity,omitempty"`

	// CommodityRaw preserves the user's original wording when no synonym matched.
	CommodityRaw string `json:"commodity_raw,omitempty"`

	// LowConfidence marks a commodity that passed through unresolved.
	LowConfidence bool `json:"low_confidence,omitempty"`

	QuantityKg *float64 `json:"quantity_kg,omitempty"`
	Unit       string   `json:"unit,omitempty"`

	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	MarketQuote bool     `json:"market_quote,omitempty"`

	Grade      string `json:"grade,omitempty"`
	Origin     string `json:"origin,omitempty"`
	Perishable *bool  `json:"perishable,omitempty"`
}

// Merge overlays non-empty fields from other onto s. Existing values are
// overwritten by newer ones; fields absent in other are left untouched.
func (s *Slots) Merge(other Slots) {
	if other.Commodity != "" {
		s.Commodity = other.Commodity
	}
	if other.CommodityRaw != "" {
		s.CommodityRaw = other.CommodityRaw
		s.LowConfidence = other.LowConfidence
	}
	if other.QuantityKg != nil {
		s.QuantityKg = other.QuantityKg
	}
	if other.Unit != "" {
		s.Unit = other.Unit
	}
	if other.Price != nil {
		s.Price = other.Price
		s.MarketQuote = false
	}
	if other.MarketQuote {
		s.MarketQuote = true
		s.Price = nil
	}
	if other.Currency != "" {
		s.Currency = other.Currency
	}
	if other.Grade != "" {
		s.Grade = other.Grade
	}
	if other.Origin != "" {
		s.Origin = other.Origin
	}
	if other.Perishable != nil {
		s.Perishable = other.Perishable
	}
}

// Turn is one utterance in the dialogue history.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	Stage     Stage     `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the full, serializable state of one dialogue. It is mutated only
// by the dialogue engine, one turn at a time, and can be reconstructed from
// its JSON form between turns.
type Session struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Stage     Stage     `json:"stage"`
	Slots     Slots     `json:"slots"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a fresh session in the greeting stage.
func NewSession(id, language string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Language:  language,
		Stage:     StageGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy safe for independent mutation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	next.Turns = make([]Turn, len(s.Turns))
	copy(next.Turns, s.Turns)
	if s.Slots.QuantityKg != nil {
		v := *s.Slots.QuantityKg
		next.Slots.QuantityKg = &v
	}
	if s.Slots.Price != nil {
		v := *s.Slots.Price
		next.Slots.Price = &v
	}
	if s.Slots.Perishable != nil {
		v := *s.Slots.Perishable
		next.Slots.Perishable = &v
	}
	return &next
}

package domain

import "time"

// ListingStatus tracks the lifecycle of a finalized listing.
type ListingStatus string

const (
	ListingDraft     ListingStatus = "draft"
	ListingBroadcast ListingStatus = "broadcast"
	ListingSold      ListingStatus = "sold"
)

// Listing is a validated, immutable description of goods offered for sale.
// Only Status changes after creation (draft -> broadcast -> sold).
type Listing struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"session_id,omitempty"`
	Commodity  string  `json:"commodity"`
	Category   string  `json:"category"`
	QuantityKg float64 `json:"quantity_kg"`
	Unit       string  `json:"unit"`

	// Price is the asking price per kg. Zero with MarketQuote set means
	// "price me at the market rate".
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	MarketQuote bool    `json:"market_quote"`

	Grade  string `json:"grade,omitempty"`
	Origin string `json:"origin,omitempty"`

	Status    ListingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// FieldError describes a single validation failure, keyed by the slot field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

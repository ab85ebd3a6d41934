package domain

import "time"

// AuditEventType defines the category of an audit event.
type AuditEventType string

const (
	EventOutgoingListing AuditEventType = "outgoing_listing"
	EventIncomingBid     AuditEventType = "incoming_bid"
)

// AuditEvent is the shape produced to the audit/persistence sink. The core
// owns only this shape; storage belongs to the adapter behind the sink.
type AuditEvent struct {
	Type      AuditEventType `json:"type"`
	Payload   any            `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// MarketQuote is a per-kg price spread for a commodity, as reported by the
// market price oracle (or its static fallback).
type MarketQuote struct {
	Commodity string  `json:"commodity"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Avg       float64 `json:"avg"`
	Trend     string  `json:"trend,omitempty"` // "up", "down" or "stable"
}

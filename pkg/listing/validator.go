// Package listing turns a set of collected slots into a finalized Listing.
// Validation is a pure function: no I/O, no clock, no randomness, so it can
// be tested without the extractor or any network dependency.
package listing

import (
	"strings"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// categories maps canonical commodities to the affinity buckets counterparties
// trade in. Unknown commodities fall back to "general".
var categories = map[string]string{
	"onion":  "produce",
	"tomato": "produce",
	"potato": "produce",
	"wheat":  "grain",
	"rice":   "grain",
}

// Category returns the affinity bucket for a commodity.
func Category(commodity string) string {
	if cat, ok := categories[strings.ToLower(commodity)]; ok {
		return cat
	}
	return "general"
}

// Validate checks a candidate slot set and builds a draft Listing from it.
// On failure it returns every field error at once so the caller can re-prompt
// for the first missing field. The only applied default is the currency;
// nothing else is auto-corrected.
func Validate(slots domain.Slots, defaultCurrency string) (*domain.Listing, []domain.FieldError) {
	var errs []domain.FieldError

	commodity := slots.Commodity
	if commodity == "" {
		commodity = strings.TrimSpace(slots.CommodityRaw)
	}
	if commodity == "" {
		errs = append(errs, domain.FieldError{Field: "commodity", Message: "commodity must not be empty"})
	}

	if slots.QuantityKg == nil || *slots.QuantityKg <= 0 {
		errs = append(errs, domain.FieldError{Field: "quantity_kg", Message: "quantity must be greater than zero"})
	}

	if slots.Unit == "" {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "unit must not be empty"})
	}

	var price float64
	if !slots.MarketQuote {
		if slots.Price == nil {
			errs = append(errs, domain.FieldError{Field: "price", Message: "price or market quote required"})
		} else if *slots.Price < 0 {
			errs = append(errs, domain.FieldError{Field: "price", Message: "price must not be negative"})
		} else {
			price = *slots.Price
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	currency := slots.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return &domain.Listing{
		Commodity:   commodity,
		Category:    Category(commodity),
		QuantityKg:  *slots.QuantityKg,
		Unit:        slots.Unit,
		Price:       price,
		Currency:    currency,
		MarketQuote: slots.MarketQuote,
		Grade:       slots.Grade,
		Origin:      slots.Origin,
		Status:      domain.ListingDraft,
	}, nil
}

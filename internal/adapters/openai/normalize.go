package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/language"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
)

// rawExtraction mirrors the response schema before normalization. Quantity is
// weakly typed because models echo "200", 200 and "two hundred" alike.
type rawExtraction struct {
	Commodity string   `mapstructure:"commodity"`
	Quantity  string   `mapstructure:"quantity"`
	Unit      string   `mapstructure:"unit"`
	Price     *float64 `mapstructure:"price"`
	AskMarket bool     `mapstructure:"ask_market_price"`
	Currency  string   `mapstructure:"currency"`
	Grade     string   `mapstructure:"grade"`
	Origin    string   `mapstructure:"origin"`
	Confirmed *bool    `mapstructure:"confirmed"`
	Reply     string   `mapstructure:"localized_reply"`
}

// unitFactors converts spoken units to kilograms. The canonical unit after
// normalization is always "kg".
var unitFactors = map[string]float64{
	"kg": 1, "kgs": 1, "kilo": 1, "kilos": 1, "kilogram": 1, "kilograms": 1,
	"किलो": 1, "কেজি": 1, "किलोग्राम": 1,
	"quintal": 100, "quintals": 100, "क्विंटल": 100,
	"ton": 1000, "tonne": 1000, "tons": 1000, "टन": 1000,
}

// Normalize turns the model's schema-constrained JSON into partial slots:
// number words become integers, units convert to kilograms, and commodity
// text resolves against the profile's synonym table. Any unparsable field is
// an extraction failure, never a silent default.
func Normalize(profile *language.Profile, content string) (*ports.ExtractionResult, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON: %v", domain.ErrExtractionFailed, err)
	}

	var raw rawExtraction
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: response does not match slot schema: %v", domain.ErrExtractionFailed, err)
	}

	result := &ports.ExtractionResult{
		Confirmed: raw.Confirmed,
		Reply:     raw.Reply,
	}

	if raw.Commodity != "" {
		canonical, ok := profile.ResolveCommodity(raw.Commodity)
		if ok {
			result.Slots.Commodity = canonical
		} else {
			result.Slots.CommodityRaw = raw.Commodity
			result.Slots.LowConfidence = true
		}
	}

	if q := strings.TrimSpace(raw.Quantity); q != "" {
		value, ok := profile.ParseQuantity(q)
		if !ok {
			return nil, fmt.Errorf("%w: unparsable quantity %q", domain.ErrExtractionFailed, raw.Quantity)
		}
		unit, factor := normalizeUnit(raw.Unit)
		kg := value * factor
		result.Slots.QuantityKg = &kg
		result.Slots.Unit = unit
	}

	if raw.Price != nil {
		price := *raw.Price
		result.Slots.Price = &price
	}
	result.Slots.MarketQuote = raw.AskMarket

	result.Slots.Currency = strings.ToUpper(strings.TrimSpace(raw.Currency))
	result.Slots.Grade = strings.TrimSpace(raw.Grade)
	result.Slots.Origin = strings.TrimSpace(raw.Origin)
	return result, nil
}

// normalizeUnit maps a spoken unit onto kg with its conversion factor.
// Unknown units pass through with factor 1 so validation can flag them.
func normalizeUnit(unit string) (string, float64) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return "kg", 1
	}
	if factor, ok := unitFactors[u]; ok {
		return "kg", factor
	}
	return unit, 1
}

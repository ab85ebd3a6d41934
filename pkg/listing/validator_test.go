package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/listing"
)

func floatPtr(v float64) *float64 { return &v }

func validSlots() domain.Slots {
	return domain.Slots{
		Commodity:  "onion",
		QuantityKg: floatPtr(100),
		Unit:       "kg",
		Price:      floatPtr(40),
	}
}

func TestValidate_CompleteSlots(t *testing.T) {
	l, errs := listing.Validate(validSlots(), "INR")
	require.Empty(t, errs)
	require.NotNil(t, l)

	assert.Equal(t, "onion", l.Commodity)
	assert.Equal(t, "produce", l.Category)
	assert.Equal(t, 100.0, l.QuantityKg)
	assert.Equal(t, 40.0, l.Price)
	assert.Equal(t, "INR", l.Currency)
	assert.Equal(t, domain.ListingDraft, l.Status)
}

func TestValidate_MarketQuoteNeedsNoPrice(t *testing.T) {
	slots := validSlots()
	slots.Price = nil
	slots.MarketQuote = true

	l, errs := listing.Validate(slots, "INR")
	require.Empty(t, errs)
	assert.True(t, l.MarketQuote)
	assert.Zero(t, l.Price)
}

func TestValidate_ExplicitCurrencyKept(t *testing.T) {
	slots := validSlots()
	slots.Currency = "NPR"

	l, errs := listing.Validate(slots, "INR")
	require.Empty(t, errs)
	assert.Equal(t, "NPR", l.Currency)
}

func TestValidate_RawCommodityFallback(t *testing.T) {
	slots := validSlots()
	slots.Commodity = ""
	slots.CommodityRaw = " dragonfruit "

	l, errs := listing.Validate(slots, "INR")
	require.Empty(t, errs)
	assert.Equal(t, "dragonfruit", l.Commodity)
	assert.Equal(t, "general", l.Category)
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Slots)
		fields []string
	}{
		{
			name:   "missing commodity",
			mutate: func(s *domain.Slots) { s.Commodity = "" },
			fields: []string{"commodity"},
		},
		{
			name:   "missing quantity",
			mutate: func(s *domain.Slots) { s.QuantityKg = nil },
			fields: []string{"quantity_kg"},
		},
		{
			name:   "zero quantity",
			mutate: func(s *domain.Slots) { s.QuantityKg = floatPtr(0) },
			fields: []string{"quantity_kg"},
		},
		{
			name:   "missing unit",
			mutate: func(s *domain.Slots) { s.Unit = "" },
			fields: []string{"unit"},
		},
		{
			name:   "no price and no market quote",
			mutate: func(s *domain.Slots) { s.Price = nil },
			fields: []string{"price"},
		},
		{
			name:   "negative price",
			mutate: func(s *domain.Slots) { s.Price = floatPtr(-5) },
			fields: []string{"price"},
		},
		{
			name: "everything missing",
			mutate: func(s *domain.Slots) {
				*s = domain.Slots{}
			},
			fields: []string{"commodity", "quantity_kg", "unit", "price"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := validSlots()
			tt.mutate(&slots)

			l, errs := listing.Validate(slots, "INR")
			assert.Nil(t, l)
			require.Len(t, errs, len(tt.fields))
			for i, f := range tt.fields {
				assert.Equal(t, f, errs[i].Field)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "produce", listing.Category("Onion"))
	assert.Equal(t, "grain", listing.Category("wheat"))
	assert.Equal(t, "general", listing.Category("saffron"))
}

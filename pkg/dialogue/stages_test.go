package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

func TestNextStage(t *testing.T) {
	yes, no := true, false
	all := bitCommodity | bitQuantity | bitPricePref | bitGrade

	tests := []struct {
		name      string
		current   domain.Stage
		bits      slotBits
		confirmed *bool
		want      domain.Stage
	}{
		{"greeting empty", domain.StageGreeting, 0, nil, domain.StageCollectingCommodity},
		{"commodity filled", domain.StageGreeting, bitCommodity, nil, domain.StageCollectingQuantity},
		{"quantity filled", domain.StageCollectingQuantity, bitCommodity | bitQuantity, nil, domain.StageAskingPricePref},
		{"explicit price", domain.StageAskingPricePref, bitCommodity | bitQuantity | bitPricePref, nil, domain.StageCollectingGrade},
		{"market requested", domain.StageAskingPricePref, bitCommodity | bitQuantity | bitPricePref | bitMarket, nil, domain.StageShowingMarketPrices},
		{"everything at once", domain.StageCollectingCommodity, all, nil, domain.StageConfirmingListing},
		{"after market prices", domain.StageShowingMarketPrices, bitCommodity | bitQuantity | bitPricePref | bitMarket, nil, domain.StageCollectingGrade},
		{"grade answered", domain.StageCollectingGrade, all, nil, domain.StageConfirmingListing},
		{"grade skipped", domain.StageCollectingGrade, bitCommodity | bitQuantity | bitPricePref, nil, domain.StageConfirmingListing},
		{"confirm yes", domain.StageConfirmingListing, all, &yes, domain.StageBroadcasting},
		{"confirm no", domain.StageConfirmingListing, all, &no, domain.StageAborted},
		{"confirm unclear", domain.StageConfirmingListing, all, nil, domain.StageConfirmingListing},
		{"terminal stays", domain.StageSuccess, all, nil, domain.StageSuccess},
		{"skipping back not allowed", domain.StageAskingPricePref, bitPricePref, nil, domain.StageCollectingCommodity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextStage(tt.current, tt.bits, tt.confirmed))
		})
	}
}

func TestPresence(t *testing.T) {
	qty := 100.0
	price := 40.0

	assert.Equal(t, slotBits(0), presence(domain.Slots{}))
	assert.Equal(t, bitCommodity, presence(domain.Slots{Commodity: "onion"}))
	assert.Equal(t, bitCommodity, presence(domain.Slots{CommodityRaw: "dragonfruit"}))
	assert.Equal(t, bitQuantity, presence(domain.Slots{QuantityKg: &qty}))
	assert.Equal(t, bitPricePref, presence(domain.Slots{Price: &price}))
	assert.Equal(t, bitPricePref|bitMarket, presence(domain.Slots{MarketQuote: true}))
	assert.Equal(t, bitGrade, presence(domain.Slots{Grade: "A"}))

	// A zero quantity does not count as collected.
	zero := 0.0
	assert.Equal(t, slotBits(0), presence(domain.Slots{QuantityKg: &zero}))
}

func TestStageForField(t *testing.T) {
	assert.Equal(t, domain.StageCollectingCommodity, stageForField("commodity"))
	assert.Equal(t, domain.StageCollectingQuantity, stageForField("quantity_kg"))
	assert.Equal(t, domain.StageCollectingQuantity, stageForField("unit"))
	assert.Equal(t, domain.StageAskingPricePref, stageForField("price"))
	assert.Equal(t, domain.StageCollectingCommodity, stageForField("anything_else"))
}

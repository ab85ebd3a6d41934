package dialogue

import "github.com/bolibazaar/bolibazaar/pkg/domain"

// Slot-presence bits. The transition table is keyed on the current stage plus
// this bitset, never on hidden state.
type slotBits uint8

const (
	bitCommodity slotBits = 1 << iota
	bitQuantity
	bitPricePref // explicit price or market-quote marker
	bitMarket    // market-quote marker specifically
	bitGrade
)

func presence(s domain.Slots) slotBits {
	var b slotBits
	if s.Commodity != "" || s.CommodityRaw != "" {
		b |= bitCommodity
	}
	if s.QuantityKg != nil && *s.QuantityKg > 0 {
		b |= bitQuantity
	}
	if s.Price != nil || s.MarketQuote {
		b |= bitPricePref
	}
	if s.MarketQuote {
		b |= bitMarket
	}
	if s.Grade != "" {
		b |= bitGrade
	}
	return b
}

// nextStage resolves the deterministic forward edge for the current stage and
// slot bitset. Confirmation answers only matter in the confirming stage.
func nextStage(current domain.Stage, bits slotBits, confirmed *bool) domain.Stage {
	switch current {
	case domain.StageConfirmingListing:
		if confirmed != nil {
			if *confirmed {
				return domain.StageBroadcasting
			}
			return domain.StageAborted
		}
		return domain.StageConfirmingListing

	case domain.StageBroadcasting, domain.StageSuccess, domain.StageAborted:
		return current

	case domain.StageShowingMarketPrices:
		// Prices were shown last turn; move on to grade collection.
		if bits&bitGrade == 0 {
			return domain.StageCollectingGrade
		}
		return domain.StageConfirmingListing

	case domain.StageCollectingGrade:
		// Grade is asked for exactly once. With or without an answer the
		// dialogue moves forward to confirmation.
		return domain.StageConfirmingListing
	}

	// Collection stages fall through to the first unfilled slot, in order.
	switch {
	case bits&bitCommodity == 0:
		return domain.StageCollectingCommodity
	case bits&bitQuantity == 0:
		return domain.StageCollectingQuantity
	case bits&bitPricePref == 0:
		return domain.StageAskingPricePref
	case current == domain.StageAskingPricePref && bits&bitMarket != 0:
		return domain.StageShowingMarketPrices
	case bits&bitGrade == 0:
		return domain.StageCollectingGrade
	default:
		return domain.StageConfirmingListing
	}
}

// stageForField maps a validation failure back to the stage responsible for
// collecting that field.
func stageForField(field string) domain.Stage {
	switch field {
	case "commodity":
		return domain.StageCollectingCommodity
	case "quantity_kg", "unit":
		return domain.StageCollectingQuantity
	case "price":
		return domain.StageAskingPricePref
	default:
		return domain.StageCollectingCommodity
	}
}

package domain

// Stage identifies the current step of a dialogue session.
type Stage string

const (
	StageGreeting            Stage = "greeting"
	StageCollectingCommodity Stage = "collecting_commodity"
	StageCollectingQuantity  Stage = "collecting_quantity"
	StageAskingPricePref     Stage = "asking_price_preference"
	StageShowingMarketPrices Stage = "showing_market_prices"
	StageCollectingGrade     Stage = "collecting_grade"
	StageConfirmingListing   Stage = "confirming_listing"
	StageBroadcasting        Stage = "broadcasting"
	StageSuccess             Stage = "success"
	StageAborted             Stage = "aborted"
)

// Terminal reports whether the stage is a sink state.
func (s Stage) Terminal() bool {
	return s == StageSuccess || s == StageAborted
}

// Valid reports whether the stage is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageGreeting, StageCollectingCommodity, StageCollectingQuantity,
		StageAskingPricePref, StageShowingMarketPrices, StageCollectingGrade,
		StageConfirmingListing, StageBroadcasting, StageSuccess, StageAborted:
		return true
	}
	return false
}

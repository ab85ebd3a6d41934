package ports

import (
	"context"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// PriceOracle looks up the current market price spread for a commodity.
// Location is optional and may be empty.
type PriceOracle interface {
	Quote(ctx context.Context, commodity, location string) (domain.MarketQuote, error)
}

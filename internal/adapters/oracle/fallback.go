package oracle

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bolibazaar/bolibazaar/internal/logging"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
)

// defaultSpreads is the static fallback, per kg in the default currency.
var defaultSpreads = map[string]domain.MarketQuote{
	"onion":  {Min: 32, Max: 45, Avg: 38, Trend: "stable"},
	"tomato": {Min: 20, Max: 35, Avg: 26, Trend: "up"},
	"potato": {Min: 15, Max: 26, Avg: 20, Trend: "stable"},
	"wheat":  {Min: 22, Max: 30, Avg: 25, Trend: "stable"},
	"rice":   {Min: 35, Max: 55, Avg: 43, Trend: "down"},
}

// genericSpread covers commodities without a dedicated fallback entry.
var genericSpread = domain.MarketQuote{Min: 20, Max: 60, Avg: 40, Trend: "stable"}

// Fallback wraps another oracle and substitutes a static spread on any
// failure. It never returns an error.
type Fallback struct {
	inner  ports.PriceOracle
	logger *slog.Logger
}

// NewFallback wraps an oracle; inner may be nil for a purely static oracle.
func NewFallback(inner ports.PriceOracle, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fallback{inner: inner, logger: logger}
}

// Quote delegates to the wrapped oracle and falls back to the static table.
func (f *Fallback) Quote(ctx context.Context, commodity, location string) (domain.MarketQuote, error) {
	if f.inner != nil {
		quote, err := f.inner.Quote(ctx, commodity, location)
		if err == nil && quote.Avg > 0 {
			return quote, nil
		}
		if err != nil {
			f.logger.Warn("oracle lookup failed, using static spread",
				"commodity", commodity, "err", err)
		}
	}
	return StaticQuote(commodity), nil
}

// StaticQuote returns the fallback spread for a commodity.
func StaticQuote(commodity string) domain.MarketQuote {
	quote, ok := defaultSpreads[strings.ToLower(commodity)]
	if !ok {
		quote = genericSpread
	}
	quote.Commodity = commodity
	return quote
}

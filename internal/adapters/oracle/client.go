// Package oracle adapts the external market price service. The HTTP client is
// wrapped by a static fallback so a dead oracle degrades price lookups
// instead of failing broadcasts or dialogue turns.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// HTTPClient implements ports.PriceOracle against a JSON price endpoint:
// GET {base}/prices/{commodity}?location={location}.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates an oracle client with a bounded request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Quote fetches the current price spread for a commodity.
func (c *HTTPClient) Quote(ctx context.Context, commodity, location string) (domain.MarketQuote, error) {
	endpoint := fmt.Sprintf("%s/prices/%s", c.baseURL, url.PathEscape(commodity))
	if location != "" {
		endpoint += "?location=" + url.QueryEscape(location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.MarketQuote{}, fmt.Errorf("failed to build oracle request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.MarketQuote{}, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.MarketQuote{}, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var quote domain.MarketQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return domain.MarketQuote{}, fmt.Errorf("failed to decode oracle response: %w", err)
	}
	if quote.Commodity == "" {
		quote.Commodity = commodity
	}
	return quote, nil
}

package oracle_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibazaar/bolibazaar/internal/adapters/oracle"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

func TestHTTPClient_Quote(t *testing.T) {
	var gotPath, gotLocation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLocation = r.URL.Query().Get("location")
		_ = json.NewEncoder(w).Encode(domain.MarketQuote{Min: 32, Max: 45, Avg: 38, Trend: "stable"})
	}))
	defer server.Close()

	client := oracle.NewHTTPClient(server.URL, time.Second)
	quote, err := client.Quote(context.Background(), "onion", "nashik")
	require.NoError(t, err)

	assert.Equal(t, "/prices/onion", gotPath)
	assert.Equal(t, "nashik", gotLocation)
	assert.Equal(t, 38.0, quote.Avg)
	assert.Equal(t, "onion", quote.Commodity)
}

func TestHTTPClient_QuoteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := oracle.NewHTTPClient(server.URL, time.Second)
	_, err := client.Quote(context.Background(), "onion", "")
	assert.Error(t, err)
}

type failingOracle struct{}

func (failingOracle) Quote(context.Context, string, string) (domain.MarketQuote, error) {
	return domain.MarketQuote{}, errors.New("connection refused")
}

func TestFallback_InnerFailure(t *testing.T) {
	f := oracle.NewFallback(failingOracle{}, nil)

	quote, err := f.Quote(context.Background(), "onion", "")
	require.NoError(t, err)
	assert.Equal(t, 38.0, quote.Avg)
	assert.Equal(t, "onion", quote.Commodity)
}

func TestFallback_NilInner(t *testing.T) {
	f := oracle.NewFallback(nil, nil)

	quote, err := f.Quote(context.Background(), "saffron", "")
	require.NoError(t, err)
	// Unknown commodities get the generic spread.
	assert.Equal(t, 40.0, quote.Avg)
	assert.Equal(t, "saffron", quote.Commodity)
}

func TestStaticQuote(t *testing.T) {
	assert.Equal(t, 26.0, oracle.StaticQuote("Tomato").Avg)
	assert.Equal(t, 40.0, oracle.StaticQuote("unknown").Avg)
}

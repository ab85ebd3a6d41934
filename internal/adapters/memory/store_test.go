package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibazaar/bolibazaar/internal/adapters/memory"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
)

func TestSessionStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewSessionStore())
}

func TestListingStore(t *testing.T) {
	store := memory.NewListingStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	l := &domain.Listing{
		ID:         "lst-1",
		Commodity:  "onion",
		Category:   "produce",
		QuantityKg: 100,
		Unit:       "kg",
		Price:      40,
		Currency:   "INR",
		Status:     domain.ListingDraft,
	}
	require.NoError(t, store.Save(ctx, l))

	loaded, err := store.Load(ctx, "lst-1")
	require.NoError(t, err)
	assert.Equal(t, "onion", loaded.Commodity)

	// Mutating the loaded copy must not touch stored state.
	loaded.Commodity = "mutated"
	again, err := store.Load(ctx, "lst-1")
	require.NoError(t, err)
	assert.Equal(t, "onion", again.Commodity)

	require.NoError(t, store.SetStatus(ctx, "lst-1", domain.ListingSold))
	again, err = store.Load(ctx, "lst-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ListingSold, again.Status)

	assert.ErrorIs(t, store.SetStatus(ctx, "missing", domain.ListingSold), domain.ErrListingNotFound)
}

func TestAuditSink(t *testing.T) {
	sink := memory.NewAuditSink()
	ctx := context.Background()

	require.NoError(t, sink.Emit(ctx, domain.AuditEvent{Type: domain.EventOutgoingListing}))
	require.NoError(t, sink.Emit(ctx, domain.AuditEvent{Type: domain.EventIncomingBid}))

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventOutgoingListing, events[0].Type)
	assert.Equal(t, domain.EventIncomingBid, events[1].Type)
}

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/bolibazaar/bolibazaar/internal/adapters/redis"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	ports.RunSessionStoreContract(t, redisstore.NewFromClient(client))
}

func TestStore_TTLExpiry(t *testing.T) {
	srv, client := newTestClient(t)
	store := redisstore.NewFromClient(client, redisstore.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSession("sess-ttl", "en")))

	_, err := store.Load(ctx, "sess-ttl")
	require.NoError(t, err)

	srv.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "sess-ttl")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// The index is pruned lazily on List.
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "sess-ttl")
}

func TestStore_CustomPrefix(t *testing.T) {
	srv, client := newTestClient(t)
	store := redisstore.NewFromClient(client, redisstore.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSession("sess-1", "en")))
	assert.True(t, srv.Exists("test:sess-1"))
}

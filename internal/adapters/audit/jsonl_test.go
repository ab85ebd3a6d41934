package audit_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibazaar/bolibazaar/internal/adapters/audit"
	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.jsonl")

	sink, err := audit.NewFileSink(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Emit(ctx, domain.AuditEvent{
		Type:      domain.EventOutgoingListing,
		Payload:   &domain.Listing{ID: "lst-1", Commodity: "onion"},
		Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, sink.Emit(ctx, domain.AuditEvent{
		Type:      domain.EventIncomingBid,
		Payload:   &domain.BroadcastEvent{TransactionID: "tx-1", Outcome: domain.OutcomeSuccess},
		Timestamp: time.Now().UTC(),
	}))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		lines = append(lines, record)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2)
	assert.Equal(t, string(domain.EventOutgoingListing), lines[0]["type"])
	assert.Equal(t, string(domain.EventIncomingBid), lines[1]["type"])
}

func TestFileSink_AppendsAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		sink, err := audit.NewFileSink(path)
		require.NoError(t, err)
		require.NoError(t, sink.Emit(ctx, domain.AuditEvent{Type: domain.EventIncomingBid}))
		require.NoError(t, sink.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(data))
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

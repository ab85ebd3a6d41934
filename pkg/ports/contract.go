package ports

import (
	"context"
	"testing"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// RunSessionStoreContract verifies that a SessionStore implementation honors
// the interface semantics. Adapters reuse it as their conformance suite.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadMissing", func(t *testing.T) {
		if _, err := store.Load(ctx, "missing"); err != domain.ErrSessionNotFound {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("SaveLoadRoundTrip", func(t *testing.T) {
		session := domain.NewSession("contract-1", "hi")
		session.Stage = domain.StageCollectingQuantity
		qty := 100.0
		session.Slots.Commodity = "onion"
		session.Slots.QuantityKg = &qty

		if err := store.Save(ctx, session); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "contract-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.Stage != session.Stage {
			t.Errorf("expected stage %s, got %s", session.Stage, loaded.Stage)
		}
		if loaded.Slots.Commodity != "onion" {
			t.Errorf("expected commodity onion, got %q", loaded.Slots.Commodity)
		}
		if loaded.Slots.QuantityKg == nil || *loaded.Slots.QuantityKg != 100 {
			t.Errorf("expected quantity 100, got %v", loaded.Slots.QuantityKg)
		}
	})

	t.Run("LoadIsolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, "contract-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		loaded.Slots.Commodity = "mutated"

		again, err := store.Load(ctx, "contract-1")
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if again.Slots.Commodity != "onion" {
			t.Errorf("store leaked a mutable reference: commodity = %q", again.Slots.Commodity)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == "contract-1" {
				found = true
			}
		}
		if !found {
			t.Error("contract-1 missing from list")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "contract-1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "contract-1"); err != domain.ErrSessionNotFound {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}

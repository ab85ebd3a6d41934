package ports

import (
	"context"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// SessionStore defines the interface for persisting dialogue sessions.
// Sessions must survive process restarts, enabling stateless request/response
// handling between turns.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if it does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes a session by ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of known sessions.
	List(ctx context.Context) ([]string, error)
}

// ListingStore persists finalized listings so broadcasts can address them by ID.
type ListingStore interface {
	// Save persists the listing under its ID.
	Save(ctx context.Context, listing *domain.Listing) error

	// Load retrieves a listing by ID.
	// Returns domain.ErrListingNotFound if it does not exist.
	Load(ctx context.Context, listingID string) (*domain.Listing, error)

	// SetStatus updates only the lifecycle status of a listing.
	SetStatus(ctx context.Context, listingID string, status domain.ListingStatus) error
}

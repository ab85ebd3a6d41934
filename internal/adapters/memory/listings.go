package memory

import (
	"context"
	"sync"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// ListingStore implements ports.ListingStore in memory.
type ListingStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Listing
}

// NewListingStore creates an empty in-memory listing store.
func NewListingStore() *ListingStore {
	return &ListingStore{data: make(map[string]*domain.Listing)}
}

// Save persists a copy of the listing.
func (s *ListingStore) Save(ctx context.Context, listing *domain.Listing) error {
	copied := *listing
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[listing.ID] = &copied
	return nil
}

// Load retrieves a copy of the listing.
func (s *ListingStore) Load(ctx context.Context, listingID string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listing, ok := s.data[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

// SetStatus updates the lifecycle status of a stored listing.
func (s *ListingStore) SetStatus(ctx context.Context, listingID string, status domain.ListingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.data[listingID]
	if !ok {
		return domain.ErrListingNotFound
	}
	listing.Status = status
	return nil
}

package ports

import (
	"context"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// ExtractionResult is the ephemeral output of one extraction call. It is
// merged into the session by the dialogue engine and then discarded.
type ExtractionResult struct {
	// Slots carries only the fields the utterance actually stated.
	Slots domain.Slots

	// Confirmed is set when the utterance answers a yes/no confirmation.
	Confirmed *bool

	// Reply is an optional localized response composed by the extractor.
	// When empty, the engine falls back to the profile's stage prompt.
	Reply string
}

// SlotExtractor turns one utterance plus the session context into partial
// structured fields. Implementations call an external generative service
// under a strict schema contract; unparsable output must surface as
// domain.ErrExtractionFailed, never as silently empty fields.
type SlotExtractor interface {
	Extract(ctx context.Context, session *domain.Session, utterance string) (*ExtractionResult, error)
}

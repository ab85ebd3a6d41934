package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage is returned when no profile exists for a language code.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionTerminated is returned when advancing a session that already
// reached a sink stage.
var ErrSessionTerminated = errors.New("session already terminated")

// ErrListingNotFound is returned when a listing ID cannot be found in the store.
var ErrListingNotFound = errors.New("listing not found")

// ErrExtractionFailed is returned after all retries against the generative
// service have been exhausted. Callers fall back to re-prompting the user.
var ErrExtractionFailed = errors.New("slot extraction failed")

// Broadcast failure outcomes. Each maps one-to-one onto a non-success Outcome
// so callers can present distinct remediation.
var (
	ErrNetwork        = errors.New("broadcast network error")
	ErrGatewayTimeout = errors.New("broadcast gateway timeout")
	ErrNoSellersFound = errors.New("no sellers found")
	ErrRateLimited    = errors.New("broadcast rate limited")
)

// BroadcastError wraps a failure outcome with its transaction context.
type BroadcastError struct {
	TransactionID string
	Outcome       Outcome
	cause         error
}

// NewBroadcastError builds a typed broadcast failure for the given outcome.
func NewBroadcastError(txID string, outcome Outcome) *BroadcastError {
	var cause error
	switch outcome {
	case OutcomeNetworkError:
		cause = ErrNetwork
	case OutcomeTimeout:
		cause = ErrGatewayTimeout
	case OutcomeNoSellers:
		cause = ErrNoSellersFound
	case OutcomeRateLimited:
		cause = ErrRateLimited
	default:
		cause = fmt.Errorf("unexpected outcome %q", outcome)
	}
	return &BroadcastError{TransactionID: txID, Outcome: outcome, cause: cause}
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast %s: %v", e.TransactionID, e.cause)
}

func (e *BroadcastError) Unwrap() error {
	return e.cause
}

package ports

import (
	"context"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

// AuditSink receives outgoing_listing and incoming_bid events. The core owns
// the event shape only; durability is the adapter's concern.
type AuditSink interface {
	Emit(ctx context.Context, event domain.AuditEvent) error
}

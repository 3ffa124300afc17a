// Package revoke tracks tokens invalidated before their natural expiry.
// The registry is keyed by the full signed token string, so two tokens
// minted for the same user at different instants are independent entries.
// Implementations must be safe for concurrent use; a revocation must be
// visible to IsRevoked the moment Revoke returns.
package revoke

import (
	"context"
	"time"
)

// ExpiryFunc extracts the embedded expiry of a raw token without verifying
// it. The sweep uses it to decide when an entry becomes redundant.
type ExpiryFunc func(raw string) (time.Time, error)

// Registry is the revocation set consulted on every authenticated request.
type Registry interface {
	// Revoke adds raw to the set. Revoking an already-revoked token is a
	// no-op.
	Revoke(ctx context.Context, raw string) error

	// IsRevoked reports whether raw has been revoked.
	IsRevoked(ctx context.Context, raw string) (bool, error)

	// Sweep drops every entry whose embedded expiry is at or before now,
	// along with entries that no longer decode. It returns the number of
	// entries removed. Entries expiring after now must survive, including
	// ones added while the sweep is running.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

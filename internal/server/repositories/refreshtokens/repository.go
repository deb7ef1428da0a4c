// Package refreshtokens declares the server-side repository contract for
// issued refresh tokens. Records are append-only: revocation flips a flag
// and the row stays behind for audit.
package refreshtokens

import (
	"context"

	"github.com/campushub/backend/internal/server/models"
)

// Repository defines operations for recording, looking up and revoking
// refresh tokens. A revoked record and an absent record are
// indistinguishable to callers of FindActive; the difference matters only
// for audit.
type Repository interface {
	// Create appends a new non-revoked record. It never overwrites.
	Create(ctx context.Context, userID, token string) error

	// FindActive returns the record for (userID, token) only while it is
	// not revoked. Absent or revoked both surface as common.ErrorNotFound.
	FindActive(ctx context.Context, userID, token string) (*models.RefreshToken, error)

	// Revoke marks the single matching record revoked and reports whether
	// this call flipped it. Idempotent; an absent match is a no-op. The
	// returned flag is what makes rotation single-use: of two concurrent
	// redeemers only one observes true.
	Revoke(ctx context.Context, userID, token string) (bool, error)

	// RevokeAll marks every record for the user revoked. Idempotent.
	RevokeAll(ctx context.Context, userID string) error
}

package models

import "time"

// RefreshToken is a server-side record of an issued refresh token.
// Records are never hard-deleted; revocation flips Revoked and the row
// stays behind for audit. A revoked record never satisfies an active
// lookup again.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Revoked   bool
	CreatedAt time.Time
}

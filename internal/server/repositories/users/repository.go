// Package users provides the read-only user lookup the auth core consumes,
// plus the single mutation the renew-password flow needs. Full user CRUD
// is owned elsewhere.
package users

import (
	"context"

	"github.com/campushub/backend/internal/server/models"
)

// Repository defines the identity lookups used by the token guards and the
// password-renewal mutation.
type Repository interface {
	// FindByID loads the identity view (id, role, settings) for a user.
	// Returns common.ErrorNotFound for unknown or deleted users; guards
	// re-check existence on every request rather than trusting the token.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail loads the identity view for the credential check at login.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// MarkDefaultPasswordChanged records that the account left the
	// default-password state. Idempotent.
	MarkDefaultPasswordChanged(ctx context.Context, userID string) error
}

// Package common defines shared constants and sentinel errors used across
// the backend layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorDefaultPasswordNotChanged marks an authenticated account that is
	// still on its initially assigned password. Unlike ErrorUnauthorized it
	// is reportable to the client, which redirects to the password-change
	// flow.
	ErrorDefaultPasswordNotChanged = errors.New("default password must be changed")

	// Token lifecycle errors. The codec keeps these distinct; guards
	// collapse all of them into ErrorUnauthorized before answering a
	// caller, so the response never reveals whether a token was forged,
	// expired or of the wrong kind.
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenTypeMismatch = errors.New("token type mismatch")
)

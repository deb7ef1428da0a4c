package models

import "time"

// UserSettings is the per-user settings sub-record consumed by the auth
// guards. IsDefaultPasswordChanged gates full access: until the initially
// assigned password is changed, only the login/refresh/renew-password
// surface is reachable.
type UserSettings struct {
	IsDefaultPasswordChanged bool
	IsEmailVerified          bool
}

// User is the read-only identity view the auth core works with. User CRUD
// lives outside this subsystem; tokens are bound to the ID and the guards
// re-check existence on every request.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	Settings     UserSettings
	CreatedAt    time.Time
}

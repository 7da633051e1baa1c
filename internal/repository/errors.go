// Package repository implements persistence for reservations and staff
// users.  Sentinel errors defined here are shared across repositories so
// that higher layers can distinguish failure scenarios with errors.Is
// without depending on driver-specific error values.
package repository

import "errors"

// ErrNotFound is returned when a lookup by identifier matches no row.
// The service layer translates this into its NotFoundError.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned when inserting a user whose username is
// already taken.  Startup seeding relies on it to stay idempotent.
var ErrUsernameExists = errors.New("username already exists")

package model

import "time"

// Staff roles.  Every endpoint that manages reservations requires one of
// these; cancellation is further restricted to ADMIN and MANAGER.
const (
	RoleAdmin        = "ADMIN"
	RoleReceptionist = "RECEPTIONIST"
	RoleManager      = "MANAGER"
)

// User is a staff account as stored in the `users` table.  Guests do not
// have accounts; they book through the public intake endpoint.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name shown after login.
//  Role         – one of ADMIN, RECEPTIONIST, MANAGER.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	FullName     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

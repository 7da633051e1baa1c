package database

import (
	"context"
	"errors"
	"log"

	"github.com/oceanview/hotel-reservation/internal/model"
	"github.com/oceanview/hotel-reservation/internal/repository"
	"github.com/oceanview/hotel-reservation/internal/utils"
)

// defaultUsers are the staff accounts created on first startup so the
// system is usable before any user administration exists.
var defaultUsers = []struct {
	username string
	password string
	fullName string
	role     string
}{
	{"admin", "admin123", "System Administrator", model.RoleAdmin},
	{"receptionist", "recep123", "Front Desk Receptionist", model.RoleReceptionist},
	{"manager", "manager123", "Hotel Manager", model.RoleManager},
}

// SeedDefaultUsers creates the default admin, receptionist and manager
// accounts when they do not already exist.  Existing usernames are left
// untouched, so the call is idempotent across restarts.
func SeedDefaultUsers(ctx context.Context, users *repository.UserRepo, bcryptCost int) error {
	for _, u := range defaultUsers {
		hash, err := utils.HashPassword(u.password, bcryptCost)
		if err != nil {
			return err
		}
		if _, err := users.Create(ctx, u.username, hash, u.fullName, u.role); err != nil {
			if errors.Is(err, repository.ErrUsernameExists) {
				continue
			}
			return err
		}
		log.Printf("seeded default user %q (role %s)", u.username, u.role)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/oceanview/hotel-reservation/internal/model"
)

// UserRepo provides access to staff accounts in the `users` table.
type UserRepo struct{ db *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a staff user with an already-hashed password and returns
// its ID.  ErrUsernameExists is returned on a duplicate username.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash, fullName, role string) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, full_name, role, created_at, updated_at) VALUES (?,?,?,?,?,?)",
		username, passwordHash, fullName, role, now, now)
	if err != nil {
		// MySQL error 1062: duplicate entry for a unique key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.  ErrNotFound is
// returned when the user does not exist.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, full_name, role, created_at, updated_at FROM users WHERE username = ? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

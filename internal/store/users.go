package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"gnote/internal/auth"
	"gnote/internal/errs"
)

// User is an isolated tenant; the root of all ownership. The credential
// hash never leaves the store.
type User struct {
	ID       string
	Username string
	Email    string
}

// CreateUser registers a new user with an argon2id-hashed password and
// returns the new user id. Duplicate username or email yields a Conflict
// error. The plaintext is never persisted or logged.
func (s *Store) CreateUser(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return "", errs.New(errs.InvalidArgument, "username must not be empty")
	}
	if email == "" {
		return "", errs.New(errs.InvalidArgument, "email must not be empty")
	}
	if password == "" {
		return "", errs.New(errs.InvalidArgument, "password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)",
		id, username, email, hash)
	if err != nil {
		return "", conflictOr(err, "username or email already taken")
	}
	return id, nil
}

// UserByUsername looks a user up by exact username.
func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, email FROM users WHERE username = ?",
		username).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, errs.New(errs.NotFound, "user not found")
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// VerifyCredentials checks username and password against the stored
// hash. Absent user and wrong password both return the same Unauthorized
// error so callers cannot probe for usernames.
func (s *Store) VerifyCredentials(ctx context.Context, username, password string) (User, error) {
	var u User
	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash FROM users WHERE username = ?",
		username).Scan(&u.ID, &u.Username, &u.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, errs.New(errs.Unauthorized, "invalid username or password")
	}
	if err != nil {
		return User{}, err
	}
	ok, err := auth.VerifyPassword(hash, password)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, errs.New(errs.Unauthorized, "invalid username or password")
	}
	return u, nil
}

package lawsite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minPasswordLen = 8

// RegisterUser hashes password and stores a new account with the given role.
func RegisterUser(ctx context.Context, s *Store, email, password string, role Role) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("register user: invalid email %q", email)
	}
	if len(password) < minPasswordLen {
		return User{}, fmt.Errorf("register user: password must be at least %d characters", minPasswordLen)
	}
	if !role.Valid() {
		return User{}, fmt.Errorf("register user: unknown role %q", role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("register user: hash password: %w", err)
	}
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.CreateUser(ctx, u); err != nil {
		return User{}, fmt.Errorf("register user: %w", err)
	}
	return u, nil
}

// Authenticate returns the account for email when password matches.
func Authenticate(ctx context.Context, s *Store, email, password string) (User, error) {
	u, err := s.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

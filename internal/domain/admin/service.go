package admin

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/bookstore-admin/internal/auth"
	"github.com/example/bookstore-admin/internal/infrastructure/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrUnauthorizedRole   = errors.New("unauthorized role")
)

// Service authenticates staff against the document store.
type Service struct {
	store store.DocumentStore
	jwt   *auth.JWTService
}

func NewService(ds store.DocumentStore, jwt *auth.JWTService) *Service {
	return &Service{store: ds, jwt: jwt}
}

// Login verifies the credentials and returns a signed token plus the user's
// public profile. A missing user and a wrong password report the same error
// so the response does not reveal which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	var u User
	found, err := s.store.FindOne(ctx, Collection, store.Filter{"email": email}, &u)
	if err != nil {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if !found || !auth.CheckPassword(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, ErrInactiveAccount
	}
	if u.Role != RoleAdmin && u.Role != RoleStaff {
		return "", nil, ErrUnauthorizedRole
	}

	token, _, err := s.jwt.GenerateToken(u.ID.Hex(), u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	profile := u.Profile()
	return token, &profile, nil
}

// EnsureDefault seeds a default admin account when the collection is empty,
// so a fresh deployment is never locked out.
func (s *Service) EnsureDefault(ctx context.Context, name, email, password string) error {
	n, err := s.store.Count(ctx, Collection, nil)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	_, err = s.store.Create(ctx, Collection, User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	log.Printf("[Admin] Seeded default admin account %s", email)
	return nil
}

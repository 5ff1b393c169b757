package account

import (
	"context"

	"github.com/google/uuid"
)

// AccountStore is the storage contract the service delegates to.
// The bun-backed Store satisfies it; tests substitute doubles.
type AccountStore interface {
	Insert(ctx context.Context, signup Signup) (*Account, error)
	FindByCredentials(ctx context.Context, login Credentials) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdatePassword(ctx context.Context, email, newPassword string) (*Account, error)
	ConfirmEmail(ctx context.Context, id uuid.UUID) (*Account, error)
	SetTwoFactor(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error)
	Remove(ctx context.Context, login Credentials) (*Account, error)
	FindAll(ctx context.Context) ([]*Account, error)
}

// Service is the public account-lifecycle surface. It forwards each call
// to the store unchanged and propagates results verbatim: no extra
// validation, retries, or error translation. Its job is to keep callers
// decoupled from the storage implementation so the store can be swapped
// without touching them.
type Service struct {
	store AccountStore
}

func NewService(store AccountStore) *Service {
	return &Service{store: store}
}

// Create registers a new account
func (s *Service) Create(ctx context.Context, signup Signup) (*Account, error) {
	return s.store.Insert(ctx, signup)
}

// Find resolves an active account by credentials
func (s *Service) Find(ctx context.Context, login Credentials) (*Account, error) {
	return s.store.FindByCredentials(ctx, login)
}

// FindByID retrieves an account by ID, banned or not
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.store.FindByID(ctx, id)
}

// UpdatePassword replaces the password of the active account with the given email
func (s *Service) UpdatePassword(ctx context.Context, email, newPassword string) (*Account, error) {
	return s.store.UpdatePassword(ctx, email, newPassword)
}

// ConfirmEmail marks the account's email as verified
func (s *Service) ConfirmEmail(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.store.ConfirmEmail(ctx, id)
}

// UpdateTwoFactorAuth replaces the account's two-factor configuration
func (s *Service) UpdateTwoFactorAuth(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error) {
	return s.store.SetTwoFactor(ctx, id, config)
}

// Delete permanently removes the account matching the credentials
func (s *Service) Delete(ctx context.Context, login Credentials) (*Account, error) {
	return s.store.Remove(ctx, login)
}

// List returns all accounts
func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.store.FindAll(ctx)
}

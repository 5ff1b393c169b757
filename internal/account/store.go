package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/account-service/internal/database"
	"github.com/redmonkez12/account-service/internal/events"
	"github.com/redmonkez12/account-service/internal/logging"
)

var (
	ErrNotFound            = errors.New("account not found")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrEmailRequired       = errors.New("email is required")
	ErrUsernameRequired    = errors.New("username is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrCredentialsRequired = errors.New("email or username is required")
)

const publishTimeout = 5 * time.Second

// Store is the single point of contact with persistent storage. Every
// mutating operation publishes exactly one domain event after the write
// succeeds; publishing is fire-and-forget and never fails the operation.
type Store struct {
	db        *bun.DB
	publisher events.Publisher
	logger    *logging.Logger
}

func NewStore(db *bun.DB, publisher events.Publisher, logger *logging.Logger) *Store {
	return &Store{
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

// Insert creates a new account from a signup. The raw password is hashed
// with argon2id and never persisted; the new account starts unconfirmed
// with the default user role and no two-factor configuration.
func (s *Store) Insert(ctx context.Context, signup Signup) (*Account, error) {
	if signup.Email == "" {
		return nil, ErrEmailRequired
	}
	if signup.Username == "" {
		return nil, ErrUsernameRequired
	}
	if signup.Password == "" {
		return nil, ErrPasswordRequired
	}
	if len(signup.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	passwordHash, err := HashPassword(signup.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dbAccount := &database.Account{
		Email:        signup.Email,
		Username:     signup.Username,
		PasswordHash: passwordHash,
		Confirmed:    false,
		Role:         string(RoleUser),
	}

	_, err = s.db.NewInsert().
		Model(dbAccount).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			if strings.Contains(err.Error(), "accounts_username_key") {
				return nil, ErrDuplicateUsername
			}
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	created := mapDBAccountToModel(dbAccount)
	s.emit(events.AccountCreated, created)

	return created, nil
}

// FindByCredentials resolves an account by email and/or username. All
// supplied fields must match, and banned accounts are never returned;
// use FindByID for administrative access to banned records.
func (s *Store) FindByCredentials(ctx context.Context, login Credentials) (*Account, error) {
	if login.IsEmpty() {
		return nil, ErrCredentialsRequired
	}

	dbAccount := new(database.Account)
	q := s.db.NewSelect().
		Model(dbAccount).
		Where("banned IS NOT TRUE")

	if login.Email != "" {
		q = q.Where("email = ?", login.Email)
	}
	if login.Username != "" {
		q = q.Where("username = ?", login.Username)
	}

	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by credentials: %w", err)
	}

	return mapDBAccountToModel(dbAccount), nil
}

// FindByID retrieves an account by ID, ignoring ban status
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	dbAccount := new(database.Account)
	err := s.db.NewSelect().
		Model(dbAccount).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return mapDBAccountToModel(dbAccount), nil
}

// UpdatePassword rehashes and stores a new password for the active account
// with the given email. The lookup is deliberately restricted to email:
// it is the recovery channel, and whether the caller knows the current
// password is checked upstream. The write is conditional on the account
// still existing, so a concurrent delete surfaces as ErrNotFound.
func (s *Store) UpdatePassword(ctx context.Context, email, newPassword string) (*Account, error) {
	if newPassword == "" {
		return nil, ErrPasswordRequired
	}
	if len(newPassword) < 8 {
		return nil, ErrPasswordTooShort
	}

	acct, err := s.FindByCredentials(ctx, Credentials{Email: email})
	if err != nil {
		return nil, err
	}

	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	result, err := s.db.NewUpdate().
		Model((*database.Account)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", now).
		Where("id = ?", acct.ID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	acct.PasswordHash = passwordHash
	acct.UpdatedAt = now
	s.emit(events.AccountPasswordUpdated, acct)

	return acct, nil
}

// ConfirmEmail marks the account's email as verified. Confirming an
// already-confirmed account is a no-op success; nothing ever flips the
// flag back to false.
func (s *Store) ConfirmEmail(ctx context.Context, id uuid.UUID) (*Account, error) {
	acct, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.db.NewUpdate().
		Model((*database.Account)(nil)).
		Set("confirmed = ?", true).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm email: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	acct.Confirmed = true
	acct.UpdatedAt = now
	s.emit(events.AccountConfirmed, acct)

	return acct, nil
}

// SetTwoFactor replaces the account's entire two-factor configuration with
// the given one. No field-level merging: stale backup codes or secrets from
// the previous configuration cannot survive. A nil config clears it.
// The config itself is stored as-is; internal consistency is the caller's
// concern.
func (s *Store) SetTwoFactor(ctx context.Context, id uuid.UUID, config *TwoFactorConfig) (*Account, error) {
	acct, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := s.db.NewUpdate().
		Model((*database.Account)(nil)).
		Set("two_factor = ?", mapTwoFactorToDB(config)).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update two-factor config: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	acct.TwoFactor = config
	acct.UpdatedAt = now
	s.emit(events.AccountTwoFactorUpdated, acct)

	return acct, nil
}

// Remove permanently deletes the account matching the credentials and
// returns its last snapshot. There is no soft delete. The delete is
// conditional on the row still existing, so losing a race with another
// delete surfaces as ErrNotFound rather than a silent success.
func (s *Store) Remove(ctx context.Context, login Credentials) (*Account, error) {
	acct, err := s.FindByCredentials(ctx, login)
	if err != nil {
		return nil, err
	}

	result, err := s.db.NewDelete().
		Model((*database.Account)(nil)).
		Where("id = ?", acct.ID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	s.emit(events.AccountDeleted, acct)

	return acct, nil
}

// FindAll returns every account, banned ones included.
// Unpaginated; unsuitable for large datasets.
func (s *Store) FindAll(ctx context.Context) ([]*Account, error) {
	var dbAccounts []*database.Account
	err := s.db.NewSelect().
		Model(&dbAccounts).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]*Account, len(dbAccounts))
	for i, dbAccount := range dbAccounts {
		accounts[i] = mapDBAccountToModel(dbAccount)
	}

	return accounts, nil
}

// emit publishes a domain event in the background. The persisting call has
// already succeeded by the time this runs; a slow or failing subscriber must
// never delay or fail it, so errors are only logged.
func (s *Store) emit(eventType string, acct *Account) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, acct); err != nil {
			s.logger.Warn("failed to publish account event",
				"type", eventType,
				"account_id", acct.ID,
				"error", err,
			)
		}
	}()
}

// mapDBAccountToModel converts database model to domain model
func mapDBAccountToModel(dba *database.Account) *Account {
	return &Account{
		ID:           dba.ID,
		Email:        dba.Email,
		Username:     dba.Username,
		PasswordHash: dba.PasswordHash,
		Confirmed:    dba.Confirmed,
		Banned:       dba.Banned,
		Role:         Role(dba.Role),
		TwoFactor:    mapDBTwoFactorToModel(dba.TwoFactor),
		CreatedAt:    dba.CreatedAt,
		UpdatedAt:    dba.UpdatedAt,
	}
}

func mapDBTwoFactorToModel(dbt *database.TwoFactor) *TwoFactorConfig {
	if dbt == nil {
		return nil
	}
	return &TwoFactorConfig{
		Enabled:     dbt.Enabled,
		Secret:      dbt.Secret,
		Verified:    dbt.Verified,
		BackupCodes: dbt.BackupCodes,
	}
}

func mapTwoFactorToDB(cfg *TwoFactorConfig) *database.TwoFactor {
	if cfg == nil {
		return nil
	}
	return &database.TwoFactor{
		Enabled:     cfg.Enabled,
		Secret:      cfg.Secret,
		Verified:    cfg.Verified,
		BackupCodes: cfg.BackupCodes,
	}
}

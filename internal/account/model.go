package account

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role attached to an account
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is the domain account record. The password hash, two-factor
// secret and backup codes never appear in JSON output; event payloads and
// API responses therefore carry the public view of the record.
type Account struct {
	ID           uuid.UUID        `json:"id"`
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	PasswordHash string           `json:"-"`
	Confirmed    bool             `json:"confirmed"`
	Banned       *bool            `json:"banned,omitempty"` // nil and false both mean active
	Role         Role             `json:"role"`
	TwoFactor    *TwoFactorConfig `json:"two_factor,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// IsBanned reports whether the account is excluded from credential lookups
func (a *Account) IsBanned() bool {
	return a.Banned != nil && *a.Banned
}

// TwoFactorConfig is the secondary-authentication configuration.
// A nil *TwoFactorConfig on the account means two-factor was never set up.
// Updates replace the whole struct, never individual fields.
type TwoFactorConfig struct {
	Enabled     bool     `json:"enabled"`
	Secret      string   `json:"-"`
	Verified    bool     `json:"verified"`
	BackupCodes []string `json:"-"`
}

// Signup is the input for creating an account
type Signup struct {
	Email    string
	Username string
	Password string
}

// Credentials is the typed filter for credential lookups. Whichever of the
// two fields are set must all match (logical AND); at least one is required.
type Credentials struct {
	Email    string
	Username string
}

// IsEmpty reports whether no filter field is set
func (c Credentials) IsEmpty() bool {
	return c.Email == "" && c.Username == ""
}

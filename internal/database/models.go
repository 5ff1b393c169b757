package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is the persisted account record.
// The two_factor column is JSONB and replaced wholesale on update,
// never merged field by field.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string     `bun:"email,notnull"`
	Username     string     `bun:"username,notnull"`
	PasswordHash string     `bun:"password_hash,notnull"`
	Confirmed    bool       `bun:"confirmed,notnull,default:false"`
	Banned       *bool      `bun:"banned"` // NULL and false both mean active
	Role         string     `bun:"role,notnull,default:'user'"`
	TwoFactor    *TwoFactor `bun:"two_factor,type:jsonb,nullzero"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// TwoFactor is the stored two-factor configuration. Unlike the domain
// model, the persisted form keeps the secret and backup codes.
type TwoFactor struct {
	Enabled     bool     `json:"enabled"`
	Secret      string   `json:"secret"`
	Verified    bool     `json:"verified"`
	BackupCodes []string `json:"backup_codes,omitempty"`
}

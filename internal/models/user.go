package models

import (
	"database/sql"
	"time"
)

// User is the users table row.
type User struct {
	UserID         string  `db:"user_id"`
	Email          string  `db:"email"`
	Name           string  `db:"name"`
	PasswordHash   *string `db:"password_hash"`
	AuthProvider   string  `db:"auth_provider"`
	ProviderUserID *string `db:"provider_user_id"`
	Phone          *string `db:"phone"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

package model

import "time"

// RoleAdmin is the only role issued in access tokens.  Hotel owners are
// admins; ownership is enforced per hotel rather than per role.
const RoleAdmin = "ADMIN"

// Admin represents a row of the `admins` table.  The password hash never
// leaves the repository layer in a response.
type Admin struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA‑256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	AdminID   uint64     // refresh_tokens.admin_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

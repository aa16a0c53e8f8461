package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AuthSource represents how a profile authenticates.
type AuthSource string

const (
	// AuthSourceLocal indicates a local admin account with a password.
	AuthSourceLocal AuthSource = "local"
	// AuthSourceOIDC indicates an account managed by the identity provider.
	AuthSourceOIDC AuthSource = "oidc"
)

// Role of a profile.
type Role string

const (
	// RoleUser is the default role for signed-in visitors.
	RoleUser Role = "user"
	// RoleAdmin can manage discount codes, applications and every comment.
	RoleAdmin Role = "admin"
)

// Profile is a signed-in user of the platform.
type Profile struct {
	// ID is the unique identifier for the profile.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// ExternalID is the identity provider subject (sub claim), empty for local accounts.
	ExternalID *string `gorm:"uniqueIndex;size:255" json:"externalId,omitempty"`
	// Email is the profile's email address.
	Email     string `gorm:"index;size:255;not null" json:"email"`
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Role      Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Active    bool   `json:"active"`
	// Password is the Argon2id hash, only set for local accounts.
	Password   string     `gorm:"size:255" json:"-"`
	AuthSource AuthSource `gorm:"type:varchar(20);not null;default:'oidc'" json:"authSource"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// IsAdmin reports whether the profile has the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// DisplayName returns "First Last". Without a name it falls back to the first
// letter of the email local part followed by "***", so the address is never
// shown.
func (p *Profile) DisplayName() string {
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}

		name += p.LastName
	}

	if name == "" {
		return maskEmail(p.Email)
	}

	return name
}

func maskEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}

	r, _ := utf8.DecodeRuneInString(local)

	return string(r) + "***"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword verifies a plaintext password against the stored hash.
func (p *Profile) VerifyPassword(password string) bool {
	if p.Password == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, p.Password)
	if err != nil {
		log.Error().Err(err).Uint64("profile_id", p.ID).Msg("failed to verify password")
		return false
	}

	return match
}

package auth

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller/profile"
	"github.com/unilabvision/myuni/internal/db/models"
)

// LocalProvider handles password authentication of local admin accounts.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate checks the password of the local account for email.
// Unknown accounts and wrong passwords both yield ErrInvalidCredentials.
func (p *LocalProvider) Authenticate(email, password string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	prof, err := profile.GetLocalByEmail(p.db, email)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	if !prof.Active {
		return nil, ErrAccountDisabled
	}

	if !prof.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return prof, nil
}

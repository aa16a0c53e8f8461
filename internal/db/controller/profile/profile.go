// Package profile provides queries for signed-in user profiles.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

var (
	// ErrProfileNotFound is returned when no profile matches.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEmailExists is returned when creating a local account for an email already in use.
	ErrEmailExists = errors.New("profile with email already exists")
)

// GetByID returns the profile with the given id.
func GetByID(db *gorm.DB, id uint64) (*models.Profile, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.Profile
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, err
	}

	return &p, nil
}

// GetLocalByEmail returns the local account for the email address.
func GetLocalByEmail(db *gorm.DB, email string) (*models.Profile, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var p models.Profile

	err := db.Where("email = ? AND auth_source = ?", strings.ToLower(email), models.AuthSourceLocal).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, err
	}

	return &p, nil
}

// CreateLocal creates a local account with an argon2id hashed password.
func CreateLocal(db *gorm.DB, email, password, firstName, lastName string, role models.Role) (*models.Profile, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	email = strings.ToLower(strings.TrimSpace(email))

	_, err := GetLocalByEmail(db, email)
	if err == nil {
		return nil, ErrEmailExists
	}

	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p := models.Profile{
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Role:       role,
		Active:     true,
		Password:   hash,
		AuthSource: models.AuthSourceLocal,
	}

	if err = db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &p, nil
}

// Identity is the set of claims the identity provider reports for a user.
type Identity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

// UpsertExternal finds the profile for the identity provider subject and
// refreshes it from the claims, creating it on first sign-in.
func UpsertExternal(db *gorm.DB, id Identity) (*models.Profile, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	role := models.RoleUser
	if id.Admin {
		role = models.RoleAdmin
	}

	var p models.Profile

	err := db.Where("external_id = ? AND auth_source = ?", id.Subject, models.AuthSourceOIDC).First(&p).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := id.Subject
		p = models.Profile{
			ExternalID: &sub,
			Email:      strings.ToLower(id.Email),
			FirstName:  id.FirstName,
			LastName:   id.LastName,
			Role:       role,
			Active:     true,
			AuthSource: models.AuthSourceOIDC,
		}

		if err = db.Create(&p).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to query profile: %w", err)
	default:
		p.Email = strings.ToLower(id.Email)
		p.FirstName = id.FirstName
		p.LastName = id.LastName
		p.Role = role

		if err = db.Save(&p).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return &p, nil
}

// CountAdmins returns the number of admin profiles.
func CountAdmins(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, controller.ErrDBNil
	}

	var count int64
	err := db.Model(&models.Profile{}).Where("role = ?", models.RoleAdmin).Count(&count).Error

	return count, err
}

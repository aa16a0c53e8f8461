// Package newsletter provides queries for newsletter subscriptions.
package newsletter

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/db/controller"
	"github.com/unilabvision/myuni/internal/db/models"
)

var (
	// ErrSubscriptionNotFound is returned when no subscription matches.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrAlreadySubscribed is returned when an active subscription exists for the email.
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

// Outcome tells what Subscribe did.
type Outcome int

const (
	// Created means a new subscription was inserted.
	Created Outcome = iota + 1
	// Reactivated means an unsubscribed address was activated again.
	Reactivated
)

// GetByEmail returns the subscription for the email address.
func GetByEmail(db *gorm.DB, email string) (*models.NewsletterSubscription, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	var s models.NewsletterSubscription
	if err := db.Where("email = ?", normalize(email)).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}

		return nil, err
	}

	return &s, nil
}

// Subscribe adds or reactivates the subscription in s. An active subscription
// for the same email yields ErrAlreadySubscribed and leaves the row untouched.
func Subscribe(db *gorm.DB, s *models.NewsletterSubscription, now time.Time) (Outcome, error) {
	s.Email = normalize(s.Email)

	existing, err := GetByEmail(db, s.Email)

	switch {
	case errors.Is(err, ErrSubscriptionNotFound):
		s.SubscriptionStatus = models.SubscriptionActive
		s.SubscribedAt = now

		if err = db.Create(s).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return 0, ErrAlreadySubscribed
			}

			return 0, err
		}

		return Created, nil
	case err != nil:
		return 0, err
	case existing.SubscriptionStatus == models.SubscriptionActive:
		*s = *existing
		return 0, ErrAlreadySubscribed
	}

	existing.FirstName = s.FirstName
	existing.LastName = s.LastName
	existing.SubscriptionStatus = models.SubscriptionActive
	existing.SubscribedAt = now
	existing.UnsubscribedAt = nil
	existing.UnsubscribeToken = s.UnsubscribeToken
	existing.IP = s.IP

	if err = db.Save(existing).Error; err != nil {
		return 0, err
	}

	*s = *existing

	return Reactivated, nil
}

// Unsubscribe marks the subscription owning the token as unsubscribed.
func Unsubscribe(db *gorm.DB, token string, now time.Time) (*models.NewsletterSubscription, error) {
	if db == nil {
		return nil, controller.ErrDBNil
	}

	if token == "" {
		return nil, ErrSubscriptionNotFound
	}

	var s models.NewsletterSubscription
	if err := db.Where("unsubscribe_token = ?", token).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}

		return nil, err
	}

	s.SubscriptionStatus = models.SubscriptionUnsubscribed
	s.UnsubscribedAt = &now

	if err := db.Save(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package models

import "time"

// SubscriptionStatus of a newsletter subscription.
type SubscriptionStatus string

const (
	// SubscriptionActive receives newsletters.
	SubscriptionActive SubscriptionStatus = "active"
	// SubscriptionUnsubscribed opted out and may be reactivated.
	SubscriptionUnsubscribed SubscriptionStatus = "unsubscribed"
)

// NewsletterSubscription is one email address on the mailing list.
type NewsletterSubscription struct {
	UUIDModel
	FirstName          string             `gorm:"size:100" json:"firstName"`
	LastName           string             `gorm:"size:100" json:"lastName"`
	Email              string             `gorm:"uniqueIndex;size:255;not null" json:"email"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"subscriptionStatus"`
	UnsubscribeToken   string             `gorm:"uniqueIndex;size:64" json:"-"`
	IP                 string             `gorm:"size:64" json:"-"`
	SubscribedAt       time.Time          `json:"subscribedAt"`
	UnsubscribedAt     *time.Time         `json:"unsubscribedAt,omitempty"`
}

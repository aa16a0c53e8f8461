// Package models contains the gorm models of every durable entity.
package models

// All returns every model migrated at start-up.
func All() []any {
	return []any{
		&Setting{},
		&Profile{},
		&BlogPost{},
		&Comment{},
		&FormConfig{},
		&FormSubmission{},
		&DiscountCode{},
		&InternshipApplication{},
		&NewsletterSubscription{},
		&Lesson{},
	}
}

package models

import "time"

// DiscountType defines how the amount of a discount code applies.
type DiscountType string

const (
	// DiscountPercentage reduces the price by a percentage (0-100].
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed reduces the price by a fixed amount.
	DiscountFixed DiscountType = "fixed"
)

// DiscountCode is a redeemable promotion code.
type DiscountCode struct {
	ID             uint64       `gorm:"primaryKey" json:"id"`
	Code           string       `gorm:"uniqueIndex;size:32;not null" json:"code"`
	Description    string       `gorm:"size:500" json:"description"`
	DiscountAmount float64      `gorm:"not null" json:"discount_amount"`
	DiscountType   DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	MaxUses        *int         `json:"max_uses"`
	UsedCount      int          `gorm:"not null;default:0" json:"used_count"`
	ValidFrom      *time.Time   `json:"valid_from"`
	ValidUntil     *time.Time   `json:"valid_until"`
	Active         bool         `json:"is_active"`
	CreatedBy      uint64       `json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Redeemable reports whether the code is active, inside its validity window
// and below its usage limit at the given time.
func (d *DiscountCode) Redeemable(now time.Time) bool {
	if !d.Active {
		return false
	}

	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}

	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}

	if d.MaxUses != nil && d.UsedCount >= *d.MaxUses {
		return false
	}

	return true
}

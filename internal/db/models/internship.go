package models

import "time"

// ApplicationStatus is the review state of an internship application.
type ApplicationStatus string

// Application states.
const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewing, ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}

// InternshipApplication is an application submitted through the careers page.
type InternshipApplication struct {
	UUIDModel
	FirstName    string            `gorm:"size:100;not null" json:"firstName"`
	LastName     string            `gorm:"size:100;not null" json:"lastName"`
	Email        string            `gorm:"index;size:255;not null" json:"email"`
	Phone        string            `gorm:"size:32" json:"phone"`
	University   string            `gorm:"size:200" json:"university"`
	Department   string            `gorm:"size:200" json:"department"`
	Grade        int               `json:"grade"`
	Position     string            `gorm:"size:100" json:"position"`
	Motivation   string            `gorm:"type:text" json:"motivation"`
	CVURL        string            `gorm:"column:cv_url;size:500" json:"cvUrl"`
	PortfolioURL string            `gorm:"size:500" json:"portfolioUrl"`
	Status       ApplicationStatus `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	Lang         string            `gorm:"size:5" json:"lang"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

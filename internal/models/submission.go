package models

import (
	"time"

	"gorm.io/gorm"
)

// SubmissionStatus represents the review state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusAccepted SubmissionStatus = "accepted"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Submission is a work entered into an exhibit.
type Submission struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// UUID is the public share slug.
	UUID      string           `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	ExhibitID uint             `gorm:"index" json:"exhibit_id"`
	Exhibit   Exhibit          `gorm:"foreignKey:ExhibitID" json:"exhibit,omitempty"`
	CreatorID uint             `gorm:"index" json:"creator_id"`
	Creator   User             `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title     string           `gorm:"type:varchar(255)" json:"title"`
	ImageURL  string           `gorm:"type:text" json:"image_url"`
	Note      string           `gorm:"type:text" json:"note"`
	Status    SubmissionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}

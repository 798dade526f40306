package models

import (
	"time"

	"gorm.io/gorm"
)

// Exhibit is a curated open call that accepts submissions.
type Exhibit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Title       string     `gorm:"type:varchar(255)" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	CuratorID   uint       `gorm:"index" json:"curator_id"`
	Curator     User       `gorm:"foreignKey:CuratorID" json:"curator,omitempty"`
	OpensAt     time.Time  `json:"opens_at"`
	ClosesAt    *time.Time `json:"closes_at"`

	Submissions []Submission `gorm:"foreignKey:ExhibitID" json:"submissions,omitempty"`
}

// IsOpen reports whether the exhibit accepts submissions at t.
func (e Exhibit) IsOpen(t time.Time) bool {
	if t.Before(e.OpensAt) {
		return false
	}
	return e.ClosesAt == nil || t.Before(*e.ClosesAt)
}

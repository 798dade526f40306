package models

import (
	"time"

	"gorm.io/gorm"
)

// UserType represents the type of user
type UserType string

const (
	UserTypeAdmin  UserType = "Admin"
	UserTypeMember UserType = "Member"
)

// User is a member of the site. Creators are users addressed by Handle.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name     string   `gorm:"type:varchar(255)" json:"name"`
	Handle   string   `gorm:"type:varchar(64);uniqueIndex" json:"handle"`
	Email    string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Bio      string   `gorm:"type:text" json:"bio"`
	UserType UserType `gorm:"type:varchar(20);default:'Member'" json:"user_type"`

	// Relationships
	Collections    []Collection    `gorm:"foreignKey:OwnerID" json:"collections,omitempty"`
	PortfolioItems []PortfolioItem `gorm:"foreignKey:CreatorID" json:"portfolio_items,omitempty"`
}

// DisplayName prefers the full name and falls back to the handle.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Handle
}

// IsAdmin reports whether the user may open the admin pages.
func (u User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

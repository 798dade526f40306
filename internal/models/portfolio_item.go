package models

import (
	"time"

	"gorm.io/gorm"
)

// PortfolioItem is a single work shown on a creator's portfolio.
type PortfolioItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CreatorID   uint   `gorm:"index" json:"creator_id"`
	Title       string `gorm:"type:varchar(255)" json:"title"`
	ImageURL    string `gorm:"type:text" json:"image_url"`
	Description string `gorm:"type:text" json:"description"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Collection is a gallery of images curated by one member.
type Collection struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Title       string `gorm:"type:varchar(255)" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     uint   `gorm:"index" json:"owner_id"`
	Owner       User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	IsPublic    bool   `gorm:"default:true" json:"is_public"`

	Items []PortfolioItem `gorm:"many2many:collection_items;" json:"items,omitempty"`
}

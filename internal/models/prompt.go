package models

import (
	"time"

	"gorm.io/gorm"
)

// Prompt is a creative challenge members respond to.
type Prompt struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Title    string `gorm:"type:varchar(255)" json:"title"`
	Body     string `gorm:"type:text" json:"body"`
	AuthorID uint   `gorm:"index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Featured is set on exactly one prompt by the rotation task.
	Featured   bool       `gorm:"default:false;index" json:"featured"`
	FeaturedAt *time.Time `json:"featured_at"`

	Responses []PromptResponse `gorm:"foreignKey:PromptID" json:"responses,omitempty"`
}

// PromptResponse is a member's answer to a prompt.
type PromptResponse struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	PromptID  uint   `gorm:"index" json:"prompt_id"`
	CreatorID uint   `gorm:"index" json:"creator_id"`
	Creator   User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title     string `gorm:"type:varchar(255)" json:"title"`
	Body      string `gorm:"type:text" json:"body"`
}

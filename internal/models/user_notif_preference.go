package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelNone  NotificationChannel = "none"
)

// UserNotifPreference decides how a curator hears about new submissions.
type UserNotifPreference struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	Channel NotificationChannel `gorm:"type:varchar(20);default:'email'" json:"channel"`
}

// DefaultNotifPreference is used when a user never saved one.
func DefaultNotifPreference(userID uint) UserNotifPreference {
	return UserNotifPreference{UserID: userID, Channel: NotificationChannelEmail}
}

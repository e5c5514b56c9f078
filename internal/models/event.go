package models

import (
	"time"

	"gorm.io/gorm"
)

// EventType categorizes a scheduled event.
type EventType string

const (
	// EventFocus marks a solo focus block.
	EventFocus EventType = "focus"
	// EventSocial marks an event meant to be shared with friends.
	EventSocial EventType = "social"
)

// IsValid reports whether the type is one of the known categories.
func (t EventType) IsValid() bool {
	return t == EventFocus || t == EventSocial
}

// Event represents a calendar entry owned by its creator.
type Event struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OwnerID   uint           `gorm:"not null;index" json:"owner_id"`
	Owner     User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name      string         `gorm:"not null" json:"name"`
	StartTime time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time      `gorm:"not null" json:"end_time"`
	Type      EventType      `gorm:"type:varchar(20);not null;index" json:"type"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

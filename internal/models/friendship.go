package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship represents an established, symmetric friendship between two
// users. Exactly one row exists per pair.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserAID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user_a_id"`
	UserBID   uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	UserA User `gorm:"foreignKey:UserAID" json:"user_a,omitempty"`
	UserB User `gorm:"foreignKey:UserBID" json:"user_b,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// BeforeCreate normalizes the pair ordering so the unique index catches a
// duplicate friendship regardless of which side initiated it.
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.UserAID > f.UserBID {
		f.UserAID, f.UserBID = f.UserBID, f.UserAID
	}
	return nil
}

// OtherUser returns the ID of the participant that is not the given user.
func (f *Friendship) OtherUser(userID uint) uint {
	if f.UserAID == userID {
		return f.UserBID
	}
	return f.UserAID
}

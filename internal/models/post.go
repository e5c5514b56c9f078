// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PostOptions holds optional display settings supplied by the author.
// The payload is stored as a JSON column so the frontend can round-trip
// whatever styling it sent.
type PostOptions struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Post represents a piece of content published by a user.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Options   *PostOptions   `gorm:"serializer:json;type:json" json:"options,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

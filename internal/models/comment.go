package models

import (
	"time"

	"gorm.io/gorm"
)

// CommentOptions holds optional display settings for a comment, stored
// verbatim like PostOptions.
type CommentOptions struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Comment represents a comment left on a post.
type Comment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	AuthorID  uint            `gorm:"not null;index" json:"author_id"`
	Author    User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostID    uint            `gorm:"not null;index" json:"post_id"`
	Post      Post            `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Content   string          `gorm:"type:text;not null" json:"content"`
	Options   *CommentOptions `gorm:"serializer:json;type:json" json:"options,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

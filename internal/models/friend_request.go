package models

import "time"

// RequestStatus represents the lifecycle state of a friend request.
type RequestStatus string

const (
	// RequestPending indicates a request awaiting a response.
	RequestPending RequestStatus = "pending"
	// RequestAccepted indicates a request the recipient accepted.
	RequestAccepted RequestStatus = "accepted"
	// RequestRejected indicates a request the recipient declined.
	RequestRejected RequestStatus = "rejected"
)

// FriendRequest represents a directed friend request from one user to
// another. Accepted and rejected requests are kept as history; withdrawing
// a pending request deletes the row outright.
type FriendRequest struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	FromID    uint          `gorm:"not null;index:idx_friend_requests_pair" json:"from_id"`
	ToID      uint          `gorm:"not null;index:idx_friend_requests_pair" json:"to_id"`
	Status    RequestStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relationships
	From User `gorm:"foreignKey:FromID" json:"from,omitempty"`
	To   User `gorm:"foreignKey:ToID" json:"to,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// Involves reports whether the given user is either side of the request.
func (r *FriendRequest) Involves(userID uint) bool {
	return r.FromID == userID || r.ToID == userID
}

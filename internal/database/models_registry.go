package database

import "github.com/clairelorenzo/app-backend-6104/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Event{},
	}
}

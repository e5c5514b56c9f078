package repository

import (
	"testing"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/database"
	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory database with the full schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Password: "not-a-real-hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, content string) *models.Post {
	t.Helper()

	post := &models.Post{AuthorID: authorID, Content: content}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestEvent(t *testing.T, db *gorm.DB, ownerID uint, name string, start time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		OwnerID:   ownerID,
		Name:      name,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Type:      models.EventFocus,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

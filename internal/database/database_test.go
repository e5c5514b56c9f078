package database

import (
	"testing"

	"github.com/clairelorenzo/app-backend-6104/internal/config"
	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	err = configurePool(db, cfg)
	assert.NoError(t, err)

	_, err = db.DB()
	assert.NoError(t, err)
}

func TestQueryOperation(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT * FROM users WHERE id = 1", "SELECT"},
		{"  insert into posts (content) values ('x')", "INSERT"},
		{"UPDATE events SET name = 'x'", "UPDATE"},
		{"delete from comments", "DELETE"},
		{"BEGIN", "BEGIN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, queryOperation(tt.sql))
	}
}

func TestPersistentModels_CoversDomain(t *testing.T) {
	var (
		hasUser, hasFriendReq, hasEvent bool
	)
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.User:
			hasUser = true
		case *models.FriendRequest:
			hasFriendReq = true
		case *models.Event:
			hasEvent = true
		}
	}
	require.True(t, hasUser, "PersistentModels should include User")
	require.True(t, hasFriendReq, "PersistentModels should include FriendRequest")
	require.True(t, hasEvent, "PersistentModels should include Event")
}

func TestPersistentModels_MigrateOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(PersistentModels()...))

	for _, table := range []string{"users", "posts", "comments", "friend_requests", "friendships", "events"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestGetSchemaStatus(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	status, err := GetSchemaStatus(db)
	require.NoError(t, err)
	assert.Equal(t, len(PersistentModels()), status.Missing, "empty database should report all tables missing")

	require.NoError(t, ApplySchema(db))

	status, err = GetSchemaStatus(db)
	require.NoError(t, err)
	assert.Zero(t, status.Missing)

	names := make([]string, 0, len(status.Tables))
	for _, tbl := range status.Tables {
		assert.True(t, tbl.Exists, "expected table %s after ApplySchema", tbl.Name)
		names = append(names, tbl.Name)
	}
	assert.Contains(t, names, "users")
	assert.Contains(t, names, "friendships")
}

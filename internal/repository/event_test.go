package repository

import (
	"context"
	"testing"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	alice := createTestUser(t, db, "alice")
	start := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	event := &models.Event{
		OwnerID:   alice.ID,
		Name:      "study group",
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Type:      models.EventSocial,
	}
	require.NoError(t, repo.Create(ctx, event))
	require.NotZero(t, event.ID)

	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "study group", got.Name)
	assert.Equal(t, models.EventSocial, got.Type)
	assert.True(t, got.StartTime.Equal(start))
}

func TestEventRepository_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	_, err := repo.GetByID(context.Background(), 77)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestEventRepository_ListSoonestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	base := time.Now().Add(time.Hour)
	createTestEvent(t, db, alice.ID, "later", base.Add(2*time.Hour))
	createTestEvent(t, db, bob.ID, "soonest", base)
	createTestEvent(t, db, alice.ID, "middle", base.Add(time.Hour))

	all, err := repo.List(ctx, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "soonest", all[0].Name)
	assert.Equal(t, "middle", all[1].Name)
	assert.Equal(t, "later", all[2].Name)

	mine, err := repo.List(ctx, &alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "middle", mine[0].Name)
	assert.Equal(t, "later", mine[1].Name)
}

func TestEventRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	alice := createTestUser(t, db, "alice")
	event := createTestEvent(t, db, alice.ID, "draft", time.Now().Add(time.Hour))

	event.Name = "sprint planning"
	event.Type = models.EventSocial
	require.NoError(t, repo.Update(ctx, event))

	got, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "sprint planning", got.Name)
	assert.Equal(t, models.EventSocial, got.Type)
}

func TestEventRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	alice := createTestUser(t, db, "alice")
	event := createTestEvent(t, db, alice.ID, "one off", time.Now().Add(time.Hour))

	require.NoError(t, repo.Delete(ctx, event.ID))

	_, err := repo.GetByID(ctx, event.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	err = repo.Delete(ctx, event.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	args := m.Called(ctx, postID, limit, offset)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateComment(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	s := &Server{commentRepo: mockComments, postRepo: mockPosts}

	app.Use(asUser(1))
	app.Post("/posts/:postId/comments", s.CreateComment)

	mockPosts.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Post{ID: 10, AuthorID: 2}, nil)
	mockPosts.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("Post", uint(99)))

	tests := []struct {
		name           string
		target         string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:   "Success",
			target: "/posts/10/comments",
			body:   map[string]string{"content": "Nice post"},
			mockSetup: func() {
				mockComments.On("Create", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.Comment).ID = 1
					}).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Content",
			target:         "/posts/10/comments",
			body:           map[string]string{"content": ""},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Post Not Found",
			target:         "/posts/99/comments",
			body:           map[string]string{"content": "hello?"},
			mockSetup:      func() {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := jsonRequest(t, http.MethodPost, tt.target, tt.body)

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetComments(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	mockPosts := new(MockPostRepository)
	s := &Server{commentRepo: mockComments, postRepo: mockPosts}

	app.Get("/posts/:postId/comments", s.GetComments)

	mockPosts.On("GetByID", mock.Anything, uint(10)).
		Return(&models.Post{ID: 10}, nil)
	mockComments.On("ListByPost", mock.Anything, uint(10), 50, 0).
		Return([]models.Comment{
			{ID: 1, PostID: 10, Content: "first"},
			{ID: 2, PostID: 10, Content: "second"},
		}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/10/comments", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
}

func TestUpdateComment_OwnershipEnforced(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	s := &Server{commentRepo: mockComments, postRepo: new(MockPostRepository)}

	app.Use(asUser(1))
	app.Patch("/comments/:id", s.UpdateComment)

	mockComments.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Comment{ID: 3, AuthorID: 2, PostID: 10, Content: "theirs"}, nil)

	req := jsonRequest(t, http.MethodPatch, "/comments/3", map[string]string{"content": "edited"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockComments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateComment_MissingMapsTo404(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	s := &Server{commentRepo: mockComments, postRepo: new(MockPostRepository)}

	app.Use(asUser(1))
	app.Patch("/comments/:id", s.UpdateComment)

	// The repo hands back the raw gorm error; the service translates it.
	mockComments.On("GetByID", mock.Anything, uint(404)).
		Return(nil, gorm.ErrRecordNotFound)

	req := jsonRequest(t, http.MethodPatch, "/comments/404", map[string]string{"content": "hi"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteComment(t *testing.T) {
	app := fiber.New()
	mockComments := new(MockCommentRepository)
	s := &Server{commentRepo: mockComments, postRepo: new(MockPostRepository)}

	app.Use(asUser(1))
	app.Delete("/comments/:id", s.DeleteComment)

	mockComments.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Comment{ID: 3, AuthorID: 1, PostID: 10, Content: "mine"}, nil)
	mockComments.On("Delete", mock.Anything, uint(3)).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/comments/3", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var comment models.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&comment))
	assert.Equal(t, uint(3), comment.ID)
}

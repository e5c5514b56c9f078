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
)

// MockFriendRepository is a mock of the FriendRepository interface
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFriendRepository) GetPendingRequest(ctx context.Context, fromID, toID uint) (*models.FriendRequest, error) {
	args := m.Called(ctx, fromID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) GetPendingBetween(ctx context.Context, userID, otherID uint) (*models.FriendRequest, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) ListRequestsInvolving(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFriendRepository) RejectRequest(ctx context.Context, req *models.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFriendRepository) DeleteRequest(ctx context.Context, req *models.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFriendRepository) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockFriendRepository) AreFriends(ctx context.Context, userID, otherID uint) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFriendRepository) DeleteFriendship(ctx context.Context, userID, otherID uint) error {
	args := m.Called(ctx, userID, otherID)
	return args.Error(0)
}

func TestSendFriendRequest(t *testing.T) {
	app := fiber.New()
	mockFriends := new(MockFriendRepository)
	mockUsers := new(MockUserRepository)
	s := &Server{friendRepo: mockFriends, userRepo: mockUsers}

	app.Use(asUser(1))
	app.Post("/friend/requests/:to", s.SendFriendRequest)

	mockUsers.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	mockUsers.On("GetByUsername", mock.Anything, "bob").
		Return(&models.User{ID: 2, Username: "bob"}, nil)
	mockUsers.On("GetByUsername", mock.Anything, "carol").
		Return(&models.User{ID: 3, Username: "carol"}, nil)
	mockUsers.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	tests := []struct {
		name           string
		target         string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:   "Success",
			target: "/friend/requests/bob",
			mockSetup: func() {
				mockFriends.On("AreFriends", mock.Anything, uint(1), uint(2)).Return(false, nil).Once()
				mockFriends.On("GetPendingBetween", mock.Anything, uint(1), uint(2)).Return(nil, nil).Once()
				mockFriends.On("CreateRequest", mock.Anything, mock.MatchedBy(func(r *models.FriendRequest) bool {
					return r.FromID == 1 && r.ToID == 2
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.FriendRequest).ID = 11
				}).Return(nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "To Self",
			target:         "/friend/requests/alice",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Target",
			target:         "/friend/requests/ghost",
			mockSetup:      func() {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Already Friends",
			target: "/friend/requests/carol",
			mockSetup: func() {
				mockFriends.On("AreFriends", mock.Anything, uint(1), uint(3)).Return(true, nil).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Already Pending",
			target: "/friend/requests/bob",
			mockSetup: func() {
				mockFriends.On("AreFriends", mock.Anything, uint(1), uint(2)).Return(false, nil).Once()
				mockFriends.On("GetPendingBetween", mock.Anything, uint(1), uint(2)).
					Return(&models.FriendRequest{ID: 11, FromID: 1, ToID: 2}, nil).Once()
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodPost, tt.target, nil)

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAcceptFriendRequest(t *testing.T) {
	app := fiber.New()
	mockFriends := new(MockFriendRepository)
	mockUsers := new(MockUserRepository)
	s := &Server{friendRepo: mockFriends, userRepo: mockUsers}

	app.Use(asUser(2))
	app.Put("/friend/accept/:from", s.AcceptFriendRequest)

	mockUsers.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)

	t.Run("accepts pending request", func(t *testing.T) {
		pending := &models.FriendRequest{ID: 11, FromID: 1, ToID: 2, Status: models.RequestPending}
		mockFriends.On("GetPendingRequest", mock.Anything, uint(1), uint(2)).Return(pending, nil).Once()
		mockFriends.On("AcceptRequest", mock.Anything, pending).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/friend/accept/alice", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("nothing pending", func(t *testing.T) {
		mockFriends.On("GetPendingRequest", mock.Anything, uint(1), uint(2)).Return(nil, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/friend/accept/alice", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRejectFriendRequest(t *testing.T) {
	app := fiber.New()
	mockFriends := new(MockFriendRepository)
	mockUsers := new(MockUserRepository)
	s := &Server{friendRepo: mockFriends, userRepo: mockUsers}

	app.Use(asUser(2))
	app.Put("/friend/reject/:from", s.RejectFriendRequest)

	mockUsers.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 1, Username: "alice"}, nil)

	pending := &models.FriendRequest{ID: 11, FromID: 1, ToID: 2, Status: models.RequestPending}
	mockFriends.On("GetPendingRequest", mock.Anything, uint(1), uint(2)).Return(pending, nil)
	mockFriends.On("RejectRequest", mock.Anything, pending).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/friend/reject/alice", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockFriends.AssertCalled(t, "RejectRequest", mock.Anything, pending)
	mockFriends.AssertNotCalled(t, "AcceptRequest", mock.Anything, mock.Anything)
}

func TestWithdrawFriendRequest(t *testing.T) {
	app := fiber.New()
	mockFriends := new(MockFriendRepository)
	mockUsers := new(MockUserRepository)
	s := &Server{friendRepo: mockFriends, userRepo: mockUsers}

	app.Use(asUser(1))
	app.Delete("/friend/requests/:to", s.WithdrawFriendRequest)

	mockUsers.On("GetByUsername", mock.Anything, "bob").
		Return(&models.User{ID: 2, Username: "bob"}, nil)

	t.Run("withdraws own pending request", func(t *testing.T) {
		pending := &models.FriendRequest{ID: 11, FromID: 1, ToID: 2, Status: models.RequestPending}
		mockFriends.On("GetPendingRequest", mock.Anything, uint(1), uint(2)).Return(pending, nil).Once()
		mockFriends.On("DeleteRequest", mock.Anything, pending).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/friend/requests/bob", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("nothing to withdraw", func(t *testing.T) {
		mockFriends.On("GetPendingRequest", mock.Anything, uint(1), uint(2)).Return(nil, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/friend/requests/bob", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetFriendRequests(t *testing.T) {
	app := fiber.New()
	mockFriends := new(MockFriendRepository)
	s := &Server{friendRepo: mockFriends, userRepo: new(MockUserRepository)}

	app.Use(asUser(2))
	app.Get("/friend/requests", s.GetFriendRequests)

	mockFriends.On("ListRequestsInvolving", mock.Anything, uint(2)).
		Return([]models.FriendRequest{
			{ID: 11, FromID: 1, ToID: 2, Status: models.RequestPending},
			{ID: 8, FromID: 2, ToID: 3, Status: models.RequestRejected},
		}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/friend/requests", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var requests []models.FriendRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&requests))
	require.Len(t, requests, 2)
	assert.Equal(t, models.RequestPending, requests[0].Status)
}

func TestGetFriends(t *testing.T) {
	app := fiber.New()
	mockFriends := new(MockFriendRepository)
	s := &Server{friendRepo: mockFriends, userRepo: new(MockUserRepository)}

	app.Use(asUser(1))
	app.Get("/friends", s.GetFriends)

	mockFriends.On("ListFriends", mock.Anything, uint(1)).
		Return([]models.User{{ID: 2, Username: "bob"}, {ID: 3, Username: "carol"}}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/friends", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var friends []models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&friends))
	require.Len(t, friends, 2)
	assert.Equal(t, "bob", friends[0].Username)
}

func TestRemoveFriend(t *testing.T) {
	app := fiber.New()
	mockFriends := new(MockFriendRepository)
	mockUsers := new(MockUserRepository)
	s := &Server{friendRepo: mockFriends, userRepo: mockUsers}

	app.Use(asUser(1))
	app.Delete("/friends/:friend", s.RemoveFriend)

	mockUsers.On("GetByUsername", mock.Anything, "bob").
		Return(&models.User{ID: 2, Username: "bob"}, nil)

	t.Run("removes friendship", func(t *testing.T) {
		mockFriends.On("DeleteFriendship", mock.Anything, uint(1), uint(2)).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/friends/bob", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not friends", func(t *testing.T) {
		mockFriends.On("DeleteFriendship", mock.Anything, uint(1), uint(2)).
			Return(models.NewNotFoundError("Friendship", uint(2))).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/friends/bob", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

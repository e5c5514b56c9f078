package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/config"
	"github.com/clairelorenzo/app-backend-6104/internal/middleware"
	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// setupAuthApp wires the auth handlers behind the real session middleware,
// with sessions held in miniredis and users in a mock repository.
func setupAuthApp(t *testing.T) (*fiber.App, *Server, *MockUserRepository) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := session.NewStore(rdb, time.Hour)
	middleware.InitSessions(store)
	t.Cleanup(func() { middleware.InitSessions(nil) })

	mockRepo := new(MockUserRepository)
	s := &Server{
		config:   &config.Config{},
		sessions: store,
		userRepo: mockRepo,
	}

	app := fiber.New()
	app.Use(middleware.SessionLoad)
	app.Post("/users", middleware.GuestOnly, s.Signup)
	app.Post("/login", middleware.GuestOnly, s.Login)
	app.Post("/logout", middleware.AuthRequired, s.Logout)
	app.Get("/session", middleware.AuthRequired, s.GetSession)

	return app, s, mockRepo
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestSignup(t *testing.T) {
	app, _, mockRepo := setupAuthApp(t)

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "alice"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 1
	}).Return(nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "taken"
	})).Return(models.NewValidationError("Username already taken"))

	t.Run("success", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/users", map[string]string{
			"username": "alice",
			"password": "Str0ngPass!word",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		// The hash must never appear in a response.
		_, leaked := body["password"]
		assert.False(t, leaked)
	})

	t.Run("weak password", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/users", map[string]string{
			"username": "bob",
			"password": "short",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/users", map[string]string{
			"username": "taken",
			"password": "Str0ngPass!word",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSignup_RejectedWhileLoggedIn(t *testing.T) {
	app, s, _ := setupAuthApp(t)

	token, err := s.sessions.Start(context.Background(), 1)
	require.NoError(t, err)

	req := jsonRequest(t, http.MethodPost, "/users", map[string]string{
		"username": "second_account",
		"password": "Str0ngPass!word",
	})
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ngPass!word"), bcrypt.MinCost)
	require.NoError(t, err)

	app, s, mockRepo := setupAuthApp(t)

	mockRepo.On("GetByUsername", mock.Anything, "alice").
		Return(&models.User{ID: 7, Username: "alice", Password: string(hash)}, nil)
	mockRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	t.Run("success sets session cookie", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"username": "alice",
			"password": "Str0ngPass!word",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cookie := sessionCookie(t, resp)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		// The token must resolve to the user in the store.
		userID, err := s.sessions.Resolve(context.Background(), cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, uint(7), userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"username": "alice",
			"password": "WrongPass1!xx",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown username gets the same error", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"username": "ghost",
			"password": "Str0ngPass!word",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Invalid username or password", body["error"])
	})
}

func TestLogout(t *testing.T) {
	app, s, _ := setupAuthApp(t)

	token, err := s.sessions.Start(context.Background(), 3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Cookie cleared and token dead.
	cookie := sessionCookie(t, resp)
	assert.Empty(t, cookie.Value)

	_, err = s.sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestLogout_RequiresSession(t *testing.T) {
	app, _, _ := setupAuthApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetSession(t *testing.T) {
	app, s, mockRepo := setupAuthApp(t)

	mockRepo.On("GetByID", mock.Anything, uint(9)).
		Return(&models.User{ID: 9, Username: "carol"}, nil)

	token, err := s.sessions.Start(context.Background(), 9)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "carol", user.Username)
}

func TestGetSession_DeletedAccount(t *testing.T) {
	app, s, mockRepo := setupAuthApp(t)

	mockRepo.On("GetByID", mock.Anything, uint(9)).
		Return(nil, models.NewNotFoundError("User", uint(9)))

	token, err := s.sessions.Start(context.Background(), 9)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	assert.Empty(t, cookie.Value)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := session.NewStore(rdb, time.Hour)
	InitSessions(store)
	t.Cleanup(func() { InitSessions(nil) })

	app := fiber.New()
	app.Use(SessionLoad)
	app.Get("/protected", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	app.Post("/guest", GuestOnly, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	return app, store
}

func TestAuthRequired_NoCookie(t *testing.T) {
	app, _ := setupSessionApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_ValidSession(t *testing.T) {
	app, store := setupSessionApp(t)

	token, err := store.Start(context.Background(), 42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired_BogusToken(t *testing.T) {
	app, _ := setupSessionApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged-token"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_EndedSession(t *testing.T) {
	app, store := setupSessionApp(t)

	token, err := store.Start(context.Background(), 42)
	require.NoError(t, err)
	require.NoError(t, store.End(context.Background(), token))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuestOnly(t *testing.T) {
	app, store := setupSessionApp(t)

	// Anonymous requests pass.
	req := httptest.NewRequest(http.MethodPost, "/guest", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Logged-in requests are rejected.
	token, err := store.Start(context.Background(), 42)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/guest", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

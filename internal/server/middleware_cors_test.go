package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clairelorenzo/app-backend-6104/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSTestApp(t *testing.T, origins string) *fiber.App {
	t.Helper()
	srv := &Server{config: &config.Config{AllowedOrigins: origins}}
	app := fiber.New()
	srv.SetupMiddleware(app)
	app.All("/probe", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func corsRequest(method, origin string) *http.Request {
	req := httptest.NewRequest(method, "/probe", nil)
	req.Header.Set("Origin", origin)
	return req
}

// The session cookie only reaches cross-origin browser clients when the
// server answers with Allow-Credentials, so every CORS response must carry
// it alongside the echoed origin.
func TestCORS_CredentialedOrigin(t *testing.T) {
	app := newCORSTestApp(t, "https://app.example.com")

	resp, err := app.Test(corsRequest(http.MethodGet, "https://app.example.com"), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnlistedOriginGetsNoHeader(t *testing.T) {
	app := newCORSTestApp(t, "https://app.example.com")

	resp, err := app.Test(corsRequest(http.MethodGet, "https://evil.example.net"), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_HeadersSurviveRateLimiting(t *testing.T) {
	app := newCORSTestApp(t, "https://app.example.com")

	// Burn through the global per-IP budget.
	var resp *http.Response
	var err error
	for i := 0; i < 101; i++ {
		resp, err = app.Test(corsRequest(http.MethodGet, "https://app.example.com"), -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	// The limiter fires after CORS, so the browser can still read the error.
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORS_PreflightNeverRateLimited(t *testing.T) {
	app := newCORSTestApp(t, "https://app.example.com")

	// Saturate the limiter with real requests first.
	for i := 0; i < 101; i++ {
		resp, err := app.Test(corsRequest(http.MethodPost, "https://app.example.com"), -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	preflight := corsRequest(http.MethodOptions, "https://app.example.com")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "content-type")

	resp, err := app.Test(preflight, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

// Package middleware provides session, logging, rate limiting and tracing
// middleware for the application.
package middleware

import (
	"github.com/clairelorenzo/app-backend-6104/internal/session"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie carrying the opaque session token.
const CookieName = "session_token"

var sessions *session.Store

// InitSessions wires the session store used by the session middleware.
func InitSessions(store *session.Store) {
	sessions = store
}

// SessionLoad resolves the session cookie, if any, and stores the
// authenticated user ID in Fiber locals. It never rejects a request;
// the guards below decide what an unauthenticated request may do.
func SessionLoad(c *fiber.Ctx) error {
	token := c.Cookies(CookieName)
	if token == "" || sessions == nil {
		return c.Next()
	}

	userID, err := sessions.Resolve(c.UserContext(), token)
	if err != nil {
		// Expired or unknown token. Treat the request as anonymous and
		// let the cookie lapse on its own.
		return c.Next()
	}

	c.Locals("userID", userID)
	c.Locals("sessionToken", token)
	return c.Next()
}

// AuthRequired rejects requests that do not carry a live session.
func AuthRequired(c *fiber.Ctx) error {
	if _, ok := c.Locals("userID").(uint); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not logged in",
		})
	}
	return c.Next()
}

// GuestOnly rejects requests from a logged-in user. Account creation and
// login are guest operations.
func GuestOnly(c *fiber.Ctx) error {
	if _, ok := c.Locals("userID").(uint); ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Already logged in",
		})
	}
	return c.Next()
}

package server

import (
	"log"

	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Limit results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)

	users, err := s.userSvc().ListUsers(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(users)
}

// GetUserByUsername handles GET /api/users/:username
// @Summary Get user by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{username} [get]
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	ctx := c.UserContext()
	username := c.Params("username")

	user, err := s.userSvc().GetUserByUsername(ctx, username)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UpdateUsername handles PATCH /api/users/username
// @Summary Change username
// @Description Rename the current account. The new name must satisfy the same rules as signup.
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{username=string} true "New username"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users/username [patch]
func (s *Server) UpdateUsername(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userSvc().UpdateUsername(ctx, service.UpdateUsernameInput{
		UserID:      userID,
		NewUsername: req.Username,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UpdatePassword handles PATCH /api/users/password
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{current_password=string,new_password=string} true "Current and new password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/password [patch]
func (s *Server) UpdatePassword(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userSvc().UpdatePassword(ctx, service.UpdatePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

// DeleteAccount handles DELETE /api/users
// @Summary Delete account
// @Description Delete the current account along with its posts, comments, events, friendships, and sessions.
// @Tags users
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /users [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	if err := s.userSvc().DeleteAccount(ctx, userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// The account is gone; end every session it had. A session that slips
	// through here resolves to a deleted user and dies on next use.
	if _, err := s.sessions.EndAll(ctx, userID); err != nil {
		log.Printf("ending sessions for deleted user %d: %v", userID, err)
	}

	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

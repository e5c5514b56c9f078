// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/service"
	"github.com/clairelorenzo/app-backend-6104/internal/session"
	"github.com/clairelorenzo/app-backend-6104/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/users
// @Summary Register account
// @Description Register a new user account. Only available to visitors without a live session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Signup request"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" validate:"required,username"`
		Password string `json:"password" validate:"required,password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, verr)
	}

	user, err := s.userSvc().Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/login
// @Summary Log in
// @Description Authenticate with username and password. On success a session cookie is set.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userSvc().Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	token, err := s.sessions.Start(c.UserContext(), user.ID)
	if err != nil {
		if errors.Is(err, session.ErrUnavailable) {
			return models.RespondWithError(c, fiber.StatusServiceUnavailable,
				models.NewInternalError(err))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	s.setSessionCookie(c, token)
	return c.JSON(user)
}

// Logout handles POST /api/logout
// @Summary Log out
// @Description End the current session and clear the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Locals("sessionToken").(string)

	if err := s.sessions.End(c.UserContext(), token); err != nil {
		if errors.Is(err, session.ErrUnavailable) {
			return models.RespondWithError(c, fiber.StatusServiceUnavailable,
				models.NewInternalError(err))
		}
		// A token that already expired still counts as logged out.
		if !errors.Is(err, session.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// GetSession handles GET /api/session
// @Summary Current session
// @Description Return the account that owns the current session.
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /session [get]
func (s *Server) GetSession(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userSvc().GetUserByID(c.UserContext(), userID)
	if err != nil {
		// The account behind the session no longer exists; treat the
		// session as dead.
		s.clearSessionCookie(c)
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not logged in"))
	}

	return c.JSON(user)
}

func (s *Server) userSvc() *service.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.userRepo)
	}
	return s.userService
}

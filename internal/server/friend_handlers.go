package server

import (
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	friends, err := s.friendSvc().ListFriends(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(friends)
}

// RemoveFriend handles DELETE /api/friends/:friend
// @Summary Remove friend
// @Tags friends
// @Produce json
// @Param friend path string true "Friend username"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /friends/{friend} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	friendName := c.Params("friend")

	if err := s.friendSvc().RemoveFriend(ctx, userID, friendName); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishUserEvent(userID, EventFriendRemoved, map[string]interface{}{
		"friend_username": friendName,
		"removed_at":      time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{"message": "Friend removed"})
}

// GetFriendRequests handles GET /api/friend/requests
// @Summary List friend requests
// @Description List pending requests sent and received by the current user.
// @Tags friends
// @Produce json
// @Success 200 {array} models.FriendRequest
// @Failure 401 {object} models.ErrorResponse
// @Router /friend/requests [get]
func (s *Server) GetFriendRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requests, err := s.friendSvc().ListRequests(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(requests)
}

// SendFriendRequest handles POST /api/friend/requests/:to
// @Summary Send friend request
// @Tags friends
// @Produce json
// @Param to path string true "Recipient username"
// @Success 201 {object} models.FriendRequest
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /friend/requests/{to} [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	toUsername := c.Params("to")

	request, err := s.friendSvc().SendRequest(ctx, userID, toUsername)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Notify the recipient so their UI updates immediately.
	if s.notifier != nil {
		if sender, serr := s.userSvc().GetUserByID(ctx, userID); serr == nil {
			s.publishUserEvent(request.ToID, EventFriendRequestReceived, map[string]interface{}{
				"request_id": request.ID,
				"from_user":  userSummary(*sender),
				"created_at": time.Now().UTC().Format(time.RFC3339Nano),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// WithdrawFriendRequest handles DELETE /api/friend/requests/:to
// @Summary Withdraw friend request
// @Tags friends
// @Param to path string true "Recipient username"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /friend/requests/{to} [delete]
func (s *Server) WithdrawFriendRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	toUsername := c.Params("to")

	if err := s.friendSvc().WithdrawRequest(ctx, userID, toUsername); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Let the recipient know the request disappeared.
	if s.notifier != nil {
		if target, terr := s.userSvc().GetUserByUsername(ctx, toUsername); terr == nil {
			s.publishUserEvent(target.ID, EventFriendRequestCancelled, map[string]interface{}{
				"from_id":      userID,
				"cancelled_at": time.Now().UTC().Format(time.RFC3339Nano),
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AcceptFriendRequest handles PUT /api/friend/accept/:from
// @Summary Accept friend request
// @Description Accept a pending request and create the friendship.
// @Tags friends
// @Produce json
// @Param from path string true "Sender username"
// @Success 200 {object} models.FriendRequest
// @Failure 404 {object} models.ErrorResponse
// @Router /friend/accept/{from} [put]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	fromUsername := c.Params("from")

	request, err := s.friendSvc().AcceptRequest(ctx, userID, fromUsername)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	// Tell the sender their request was accepted.
	if s.notifier != nil {
		if accepter, aerr := s.userSvc().GetUserByID(ctx, userID); aerr == nil {
			s.publishUserEvent(request.FromID, EventFriendRequestAccepted, map[string]interface{}{
				"request_id":  request.ID,
				"friend_user": userSummary(*accepter),
				"accepted_at": time.Now().UTC().Format(time.RFC3339Nano),
			})
		}
	}

	return c.JSON(request)
}

// RejectFriendRequest handles PUT /api/friend/reject/:from
// @Summary Reject friend request
// @Tags friends
// @Produce json
// @Param from path string true "Sender username"
// @Success 200 {object} models.FriendRequest
// @Failure 404 {object} models.ErrorResponse
// @Router /friend/reject/{from} [put]
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	fromUsername := c.Params("from")

	request, err := s.friendSvc().RejectRequest(ctx, userID, fromUsername)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.publishUserEvent(request.FromID, EventFriendRequestRejected, map[string]interface{}{
		"request_id":  request.ID,
		"rejected_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(request)
}

func (s *Server) friendSvc() *service.FriendService {
	if s.friendService == nil {
		s.friendService = service.NewFriendService(s.friendRepo, s.userRepo)
	}
	return s.friendService
}

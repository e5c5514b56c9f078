package server

import (
	"errors"
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondCommentError maps comment service errors onto HTTP statuses.
func respondCommentError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := fiber.StatusInternalServerError
		switch appErr.Code {
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		}
		return models.RespondWithError(c, status, appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// GetComments handles GET /api/posts/:postId/comments
// @Summary List comments on a post
// @Tags comments
// @Produce json
// @Param postId path int true "Post ID"
// @Param limit query int false "Limit results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)

	comments, err := s.commentSvc().ListComments(ctx, postID, page.Limit, page.Offset)
	if err != nil {
		return respondCommentError(c, err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:postId/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path int true "Post ID"
// @Param request body object{content=string,options=models.CommentOptions} true "Comment content"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{postId}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string                 `json:"content"`
		Options *models.CommentOptions `json:"options"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentSvc().CreateComment(ctx, service.CreateCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
		Options: req.Options,
	})
	if err != nil {
		return respondCommentError(c, err)
	}

	// Tell the post's author someone commented, unless they commented on
	// their own post.
	if s.notifier != nil {
		if post, perr := s.postSvc().GetPost(ctx, postID); perr == nil && post.AuthorID != userID {
			s.publishUserEvent(post.AuthorID, EventCommentCreated, map[string]interface{}{
				"comment_id": comment.ID,
				"post_id":    postID,
				"author":     userSummary(comment.Author),
				"created_at": time.Now().UTC().Format(time.RFC3339Nano),
			})
		}
	}
	s.publishBroadcastEvent(EventCommentCreated, map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    postID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PATCH /api/comments/:id
// @Summary Update comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body object{content=string,options=models.CommentOptions} true "Fields to update"
// @Success 200 {object} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string                 `json:"content"`
		Options *models.CommentOptions `json:"options"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentSvc().UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
		Options:   req.Options,
	})
	if err != nil {
		return respondCommentError(c, err)
	}

	s.publishBroadcastEvent(EventCommentUpdated, map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete comment
// @Description Delete a comment. Allowed for the comment author and for the author of the post it belongs to.
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentSvc().DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	})
	if err != nil {
		return respondCommentError(c, err)
	}

	s.publishBroadcastEvent(EventCommentDeleted, map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    comment.PostID,
		"deleted_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(comment)
}

func (s *Server) commentSvc() *service.CommentService {
	if s.commentService == nil {
		s.commentService = service.NewCommentService(s.commentRepo, s.postRepo)
	}
	return s.commentService
}

package server

import (
	"time"

	"github.com/clairelorenzo/app-backend-6104/internal/models"
	"github.com/clairelorenzo/app-backend-6104/internal/service"
	"github.com/clairelorenzo/app-backend-6104/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetEvents handles GET /api/events with an optional owner filter
// (?owner=<username>).
// @Summary List events
// @Tags events
// @Produce json
// @Param owner query string false "Filter by owner username"
// @Param limit query int false "Limit results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} models.Event
// @Failure 404 {object} models.ErrorResponse
// @Router /events [get]
func (s *Server) GetEvents(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)

	var ownerID *uint
	if owner := c.Query("owner"); owner != "" {
		user, err := s.userSvc().GetUserByUsername(ctx, owner)
		if err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		ownerID = &user.ID
	}

	events, err := s.eventSvc().ListEvents(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(events)
}

// GetEvent handles GET /api/events/:id
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} models.Event
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id} [get]
func (s *Server) GetEvent(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventSvc().GetEvent(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(event)
}

// CreateEvent handles POST /api/events
// @Summary Create event
// @Description Schedule an event owned by the current user. Type must be "focus" or "social".
// @Tags events
// @Accept json
// @Produce json
// @Param request body object{name=string,start_time=string,end_time=string,type=string} true "Event details"
// @Success 201 {object} models.Event
// @Failure 400 {object} models.ErrorResponse
// @Router /events [post]
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name      string    `json:"name" validate:"required,max=200"`
		StartTime time.Time `json:"start_time" validate:"required"`
		EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
		Type      string    `json:"type" validate:"required,eventtype"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, verr)
	}

	event, err := s.eventSvc().CreateEvent(ctx, service.CreateEventInput{
		UserID:    userID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      models.EventType(req.Type),
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PATCH /api/events/:id. Absent fields keep their
// current values.
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body object{name=string,start_time=string,end_time=string,type=string} true "Fields to update"
// @Success 200 {object} models.Event
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id} [patch]
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name      *string    `json:"name"`
		StartTime *time.Time `json:"start_time"`
		EndTime   *time.Time `json:"end_time"`
		Type      *string    `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateEventInput{
		UserID:    userID,
		EventID:   eventID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.Type != nil {
		t := models.EventType(*req.Type)
		in.Type = &t
	}

	event, err := s.eventSvc().UpdateEvent(ctx, in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id
// @Summary Delete event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} models.Event
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /events/{id} [delete]
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventSvc().DeleteEvent(ctx, service.DeleteEventInput{
		UserID:  userID,
		EventID: eventID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(event)
}

func (s *Server) eventSvc() *service.EventService {
	if s.eventService == nil {
		s.eventService = service.NewEventService(s.eventRepo)
	}
	return s.eventService
}

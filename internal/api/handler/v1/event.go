package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/events-api/internal/api/handler/v1/request"
	"github.com/hearthside/events-api/internal/api/handler/v1/response"
	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/service"
)

type EventHandler struct {
	svc  *service.EventService
	uSvc *service.UserService
}

func NewEventHandler(svc *service.EventService, uSvc *service.UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// CreateEvent godoc
//
//	@Summary  Create an event (admin)
//	@Tags     events
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    request body request.CreateEventRequest true "create event request"
//	@Success  201 {object} domain.Event
//	@Failure  400 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Router   /v1/events [post]
func (h *EventHandler) CreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := getUserFromContext(ctx, h.uSvc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errAdminRequired))

		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.CreateEvent(ctx, domain.Event{
		Name:            req.Name,
		Description:     req.Description,
		Venue:           req.Venue,
		StartsAt:        startsAt,
		AttendanceLimit: req.AttendanceLimit,
	})
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// PublishEvent godoc
//
//	@Summary  Publish an event (admin)
//	@Tags     events
//	@Security BearerToken
//	@Param    id path int true "event id"
//	@Success  204
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Router   /v1/events/{id}/publish [post]
func (h *EventHandler) PublishEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := getUserFromContext(ctx, h.uSvc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errAdminRequired))

		return
	}

	if err = h.svc.PublishEvent(ctx, eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetEvents godoc
//
//	@Summary  List published events
//	@Tags     events
//	@Produce  json
//	@Success  200 {array} domain.Event
//	@Router   /v1/events [get]
func (h *EventHandler) GetEvents(ctx *gin.Context) {
	events, err := h.svc.GetPublishedEvents(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// GetAllEvents godoc
//
//	@Summary  List all events including drafts (admin)
//	@Tags     events
//	@Produce  json
//	@Security BearerToken
//	@Success  200 {array} domain.Event
//	@Failure  403 {object} response.Err
//	@Router   /v1/admin/events [get]
func (h *EventHandler) GetAllEvents(ctx *gin.Context) {
	user, err := getUserFromContext(ctx, h.uSvc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errAdminRequired))

		return
	}

	events, err := h.svc.GetAllEvents(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// GetEvent godoc
//
//	@Summary  Get an event
//	@Tags     events
//	@Produce  json
//	@Param    id path int true "event id"
//	@Success  200 {object} domain.Event
//	@Failure  404 {object} response.Err
//	@Router   /v1/events/{id} [get]
func (h *EventHandler) GetEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

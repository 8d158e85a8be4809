package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/events-api/internal/api/handler/v1/request"
	"github.com/hearthside/events-api/internal/api/handler/v1/response"
	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/service"
)

type RSVPHandler struct {
	svc  *service.RSVPService
	uSvc *service.UserService
}

func NewRSVPHandler(svc *service.RSVPService, uSvc *service.UserService) *RSVPHandler {
	return &RSVPHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// Submit godoc
//
//	@Summary  Submit an RSVP for an event
//	@Description Confirms the RSVP while the event has room, waitlists it
//	@Description otherwise. One RSVP per email per event.
//	@Tags     rsvps
//	@Accept   json
//	@Produce  json
//	@Param    id path int true "event id"
//	@Param    request body request.SubmitRSVPRequest true "rsvp request"
//	@Success  201 {object} domain.RSVP
//	@Failure  400 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Failure  409 {object} response.Err
//	@Router   /v1/events/{id}/rsvps [post]
func (h *RSVPHandler) Submit(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SubmitRSVPRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rsvp, err := h.svc.Submit(ctx, eventID, domain.RSVP{
		Handle: req.Handle,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))

		return
	case errors.Is(err, service.ErrDuplicateRSVP):
		response.RenderErr(ctx, response.ErrConflict(err))

		return
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, rsvp)
}

// GetRSVPs godoc
//
//	@Summary  List RSVPs for an event (admin)
//	@Tags     rsvps
//	@Produce  json
//	@Security BearerToken
//	@Param    id path int true "event id"
//	@Success  200 {array} domain.RSVP
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Router   /v1/events/{id}/rsvps [get]
func (h *RSVPHandler) GetRSVPs(ctx *gin.Context) {
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

	rsvps, err := h.svc.GetRSVPs(ctx, eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "id", eventID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rsvps)
}

// UpdateStatus godoc
//
//	@Summary  Update an RSVP's status (admin)
//	@Description Admins use this to promote waitlisted RSVPs, reject, or
//	@Description cancel. Promotion is never automatic.
//	@Tags     rsvps
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    id path int true "rsvp id"
//	@Param    request body request.UpdateRSVPStatusRequest true "status request"
//	@Success  200 {object} domain.RSVP
//	@Failure  400 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Router   /v1/rsvps/{id}/status [patch]
func (h *RSVPHandler) UpdateStatus(ctx *gin.Context) {
	rsvpID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRSVPStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err = req.Validate(); err != nil {
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

	rsvp, err := h.svc.UpdateStatus(ctx, rsvpID, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidRSVPStatus):
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	case errors.Is(err, service.ErrRSVPNotFound):
		response.RenderErr(ctx, response.ErrNotFound("rsvp", "id", rsvpID))

		return
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rsvp)
}

// MarkAttendance godoc
//
//	@Summary  Record attendance on an RSVP (admin)
//	@Tags     rsvps
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    id path int true "rsvp id"
//	@Param    request body request.MarkAttendanceRequest true "attendance request"
//	@Success  200 {object} domain.RSVP
//	@Failure  400 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Router   /v1/rsvps/{id}/attendance [patch]
func (h *RSVPHandler) MarkAttendance(ctx *gin.Context) {
	rsvpID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.MarkAttendanceRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err = req.Validate(); err != nil {
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

	rsvp, err := h.svc.MarkAttendance(ctx, rsvpID, *req.Attended)
	if err != nil {
		if errors.Is(err, service.ErrRSVPNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("rsvp", "id", rsvpID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rsvp)
}

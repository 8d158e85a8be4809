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

type SubmissionHandler struct {
	svc  *service.SubmissionService
	uSvc *service.UserService
}

func NewSubmissionHandler(svc *service.SubmissionService, uSvc *service.UserService) *SubmissionHandler {
	return &SubmissionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// Create godoc
//
//	@Summary  Apply as an artist or vendor
//	@Tags     submissions
//	@Accept   json
//	@Produce  json
//	@Param    request body request.CreateSubmissionRequest true "submission request"
//	@Success  201 {object} domain.Submission
//	@Failure  400 {object} response.Err
//	@Router   /v1/submissions [post]
func (h *SubmissionHandler) Create(ctx *gin.Context) {
	var req request.CreateSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	submission, err := h.svc.CreateSubmission(ctx, domain.Submission{
		Kind:        req.Kind,
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, submission)
}

// List godoc
//
//	@Summary  List submissions (admin)
//	@Tags     submissions
//	@Produce  json
//	@Security BearerToken
//	@Success  200 {array} domain.Submission
//	@Failure  403 {object} response.Err
//	@Router   /v1/submissions [get]
func (h *SubmissionHandler) List(ctx *gin.Context) {
	user, err := getUserFromContext(ctx, h.uSvc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(errAdminRequired))

		return
	}

	submissions, err := h.svc.GetSubmissions(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// UpdateStatus godoc
//
//	@Summary  Approve or reject a submission (admin)
//	@Tags     submissions
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    id path int true "submission id"
//	@Param    request body request.UpdateSubmissionStatusRequest true "status request"
//	@Success  200 {object} domain.Submission
//	@Failure  400 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Router   /v1/submissions/{id}/status [patch]
func (h *SubmissionHandler) UpdateStatus(ctx *gin.Context) {
	submissionID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateSubmissionStatusRequest
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

	submission, err := h.svc.UpdateStatus(ctx, submissionID, req.Status)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidSubmissionStatus):
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("submission", "id", submissionID))

		return
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, submission)
}

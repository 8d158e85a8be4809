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

type RaffleHandler struct {
	svc  *service.RaffleService
	uSvc *service.UserService
}

func NewRaffleHandler(svc *service.RaffleService, uSvc *service.UserService) *RaffleHandler {
	return &RaffleHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// CreateRaffle godoc
//
//	@Summary  Create a raffle (admin)
//	@Tags     raffles
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    request body request.CreateRaffleRequest true "create raffle request"
//	@Success  201 {object} domain.Raffle
//	@Failure  400 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Router   /v1/raffles [post]
func (h *RaffleHandler) CreateRaffle(ctx *gin.Context) {
	var req request.CreateRaffleRequest
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

	raffle, err := h.svc.CreateRaffle(ctx, domain.Raffle{
		EventID: req.EventID,
		Name:    req.Name,
	})
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, raffle)
}

// ActivateRaffle godoc
//
//	@Summary  Open a raffle for ticket sales and allocations (admin)
//	@Tags     raffles
//	@Security BearerToken
//	@Param    id path int true "raffle id"
//	@Success  204
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Router   /v1/raffles/{id}/activate [post]
func (h *RaffleHandler) ActivateRaffle(ctx *gin.Context) {
	raffleID, err := parseIDParam(ctx, "id")
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

	if err = h.svc.ActivateRaffle(ctx, raffleID); err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle", "id", raffleID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddArtist godoc
//
//	@Summary  Enter an artist into a raffle (admin)
//	@Tags     raffles
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    id path int true "raffle id"
//	@Param    request body request.AddArtistRequest true "add artist request"
//	@Success  201 {object} domain.Artist
//	@Failure  400 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Router   /v1/raffles/{id}/artists [post]
func (h *RaffleHandler) AddArtist(ctx *gin.Context) {
	raffleID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AddArtistRequest
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

	artist, err := h.svc.AddArtist(ctx, raffleID, domain.Artist{
		Name: req.Name,
		Bio:  req.Bio,
		Link: req.Link,
	})
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle", "id", raffleID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, artist)
}

// GetRaffles godoc
//
//	@Summary  List raffles
//	@Tags     raffles
//	@Produce  json
//	@Success  200 {array} domain.Raffle
//	@Router   /v1/raffles [get]
func (h *RaffleHandler) GetRaffles(ctx *gin.Context) {
	raffles, err := h.svc.GetRaffles(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, raffles)
}

// GetRaffle godoc
//
//	@Summary  Get a raffle with its artists
//	@Tags     raffles
//	@Produce  json
//	@Param    id path int true "raffle id"
//	@Success  200 {object} domain.Raffle
//	@Failure  404 {object} response.Err
//	@Router   /v1/raffles/{id} [get]
func (h *RaffleHandler) GetRaffle(ctx *gin.Context) {
	raffleID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.GetRaffle(ctx, raffleID)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle", "id", raffleID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, raffle)
}

// AllocateTickets godoc
//
//	@Summary  Allocate the caller's tickets to an artist
//	@Description Commits the given tickets to the artist. The request succeeds
//	@Description for all tickets or none of them.
//	@Tags     raffles
//	@Accept   json
//	@Security BearerToken
//	@Param    id path int true "raffle id"
//	@Param    request body request.SubmitTicketsRequest true "allocation request"
//	@Success  204
//	@Failure  400 {object} response.Err
//	@Failure  401 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Failure  409 {object} response.Err
//	@Router   /v1/raffles/{id}/allocations [post]
func (h *RaffleHandler) AllocateTickets(ctx *gin.Context) {
	raffleID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SubmitTicketsRequest
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

	err = h.svc.AllocateTickets(ctx, user.ID, raffleID, req.ArtistID, req.TicketIDs)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrRaffleNotFound):
		response.RenderErr(ctx, response.ErrNotFound("raffle", "id", raffleID))

		return
	case errors.Is(err, service.ErrArtistNotInRaffle):
		response.RenderErr(ctx, response.ErrNotFound("artist", "id", req.ArtistID))

		return
	case errors.Is(err, service.ErrRaffleNotActive):
		response.RenderErr(ctx, response.ErrConflict(err))

		return
	case errors.Is(err, service.ErrInvalidTicketSet):
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// SelectWinner godoc
//
//	@Summary  Draw a winning ticket for an artist (admin)
//	@Description Draws uniformly among the tickets allocated to the artist.
//	@Description Once a winner is recorded, another draw requires redraw=true.
//	@Tags     raffles
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    id path int true "raffle id"
//	@Param    request body request.SelectWinnerRequest true "winner request"
//	@Success  200 {object} domain.WinnerResult
//	@Failure  400 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Failure  409 {object} response.Err
//	@Router   /v1/raffles/{id}/winner [post]
func (h *RaffleHandler) SelectWinner(ctx *gin.Context) {
	raffleID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SelectWinnerRequest
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

	result, err := h.svc.SelectWinner(ctx, raffleID, req.ArtistID, req.Redraw)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrRaffleNotFound):
		response.RenderErr(ctx, response.ErrNotFound("raffle", "id", raffleID))

		return
	case errors.Is(err, service.ErrArtistNotInRaffle):
		response.RenderErr(ctx, response.ErrNotFound("artist", "id", req.ArtistID))

		return
	case errors.Is(err, service.ErrWinnerAlreadySelected), errors.Is(err, service.ErrNoTickets):
		response.RenderErr(ctx, response.ErrConflict(err))

		return
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetWinners godoc
//
//	@Summary  List recorded winners for a raffle
//	@Tags     raffles
//	@Produce  json
//	@Param    id path int true "raffle id"
//	@Success  200 {array} domain.RaffleArtist
//	@Failure  404 {object} response.Err
//	@Router   /v1/raffles/{id}/winners [get]
func (h *RaffleHandler) GetWinners(ctx *gin.Context) {
	raffleID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	winners, err := h.svc.GetWinners(ctx, raffleID)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle", "id", raffleID))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, winners)
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/events-api/internal/api/handler/v1/response"
	"github.com/hearthside/events-api/internal/service"
)

type TicketHandler struct {
	svc  *service.TicketService
	uSvc *service.UserService
}

func NewTicketHandler(svc *service.TicketService, uSvc *service.UserService) *TicketHandler {
	return &TicketHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// GetTickets godoc
//
//	@Summary  List the authenticated user's tickets
//	@Tags     tickets
//	@Produce  json
//	@Security BearerToken
//	@Success  200 {array} domain.Ticket
//	@Failure  401 {object} response.Err
//	@Router   /v1/tickets/me [get]
func (h *TicketHandler) GetTickets(ctx *gin.Context) {
	user, err := getUserFromContext(ctx, h.uSvc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	tickets, err := h.svc.GetUserTickets(ctx, user.ID)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

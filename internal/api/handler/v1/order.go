package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/events-api/internal/api/handler/v1/request"
	"github.com/hearthside/events-api/internal/api/handler/v1/response"
	"github.com/hearthside/events-api/internal/service"
)

type OrderHandler struct {
	svc  *service.OrderService
	uSvc *service.UserService
}

func NewOrderHandler(svc *service.OrderService, uSvc *service.UserService) *OrderHandler {
	return &OrderHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// CreateCheckout godoc
//
//	@Summary  Start a ticket purchase
//	@Description Opens a Stripe checkout session for the given raffle and
//	@Description quantity, and records a pending order. The response carries
//	@Description the checkout URL to redirect the buyer to.
//	@Tags     orders
//	@Accept   json
//	@Produce  json
//	@Security BearerToken
//	@Param    request body request.CreateCheckoutRequest true "checkout request"
//	@Success  201 {object} domain.Order
//	@Failure  400 {object} response.Err
//	@Failure  401 {object} response.Err
//	@Router   /v1/orders/checkout [post]
func (h *OrderHandler) CreateCheckout(ctx *gin.Context) {
	var req request.CreateCheckoutRequest
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

	order, err := h.svc.CreateCheckout(ctx, user.ID, req.RaffleID, req.Quantity)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// IssueTickets godoc
//
//	@Summary  Issue tickets for a paid order
//	@Description Converts a paid order into numbered tickets. Calling it again
//	@Description on an already-issued order returns the same tickets.
//	@Tags     orders
//	@Produce  json
//	@Security BearerToken
//	@Param    id path int true "order id"
//	@Success  200 {object} response.IssueTicketsResponse
//	@Failure  400 {object} response.Err
//	@Failure  401 {object} response.Err
//	@Failure  403 {object} response.Err
//	@Failure  404 {object} response.Err
//	@Failure  409 {object} response.Err
//	@Router   /v1/orders/{id}/tickets [post]
func (h *OrderHandler) IssueTickets(ctx *gin.Context) {
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := getUserFromContext(ctx, h.uSvc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	tickets, order, err := h.svc.IssueTickets(ctx, user.ID, orderID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrOrderNotFound):
		response.RenderErr(ctx, response.ErrNotFound("order", "id", orderID))

		return
	case errors.Is(err, service.ErrOrderForbidden):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))

		return
	case errors.Is(err, service.ErrPaymentIncomplete):
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	case errors.Is(err, service.ErrTicketNumbering):
		response.RenderErr(ctx, response.ErrConflict(err))

		return
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.IssueTicketsResponse{
		Order:   order,
		Tickets: tickets,
	})
}

// GetOrders godoc
//
//	@Summary  List the authenticated user's orders
//	@Tags     orders
//	@Produce  json
//	@Security BearerToken
//	@Success  200 {array} domain.Order
//	@Failure  401 {object} response.Err
//	@Router   /v1/orders/me [get]
func (h *OrderHandler) GetOrders(ctx *gin.Context) {
	user, err := getUserFromContext(ctx, h.uSvc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	orders, err := h.svc.GetOrders(ctx, user.ID)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, orders)
}

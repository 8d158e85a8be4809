package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/events-api/internal/api/handler/v1/response"
	"github.com/hearthside/events-api/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// Me godoc
//
//	@Summary  Get the authenticated user
//	@Tags     users
//	@Produce  json
//	@Security BearerToken
//	@Success  200 {object} domain.User
//	@Failure  401 {object} response.Err
//	@Router   /v1/users/me [get]
func (h *UserHandler) Me(ctx *gin.Context) {
	user, err := getUserFromContext(ctx, h.svc)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, user)
}

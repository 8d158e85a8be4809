package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/service"
)

var errAdminRequired = errors.New("admin role required")

func getUserFromContext(ctx *gin.Context, uSvc *service.UserService) (domain.User, error) {
	userID := ctx.GetUint("userID")

	return uSvc.GetUser(ctx, userID)
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

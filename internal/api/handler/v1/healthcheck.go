package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckHandler struct{}

func NewHealthcheckHandler() *HealthcheckHandler {
	return &HealthcheckHandler{}
}

// Healthcheck godoc
//
//	@Summary  Check whether the server is up
//	@Tags     healthcheck
//	@Produce  plain
//	@Success  200 {string} string "ok"
//	@Router   / [get]
func (h *HealthcheckHandler) Healthcheck(ctx *gin.Context) {
	ctx.String(http.StatusOK, "ok")
}

package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/events-api/internal/api/handler/v1/request"
	"github.com/hearthside/events-api/internal/api/handler/v1/response"
	"github.com/hearthside/events-api/internal/domain"
	"github.com/hearthside/events-api/internal/pkg/jwthelper"
	"github.com/hearthside/events-api/internal/service"
)

var errWrongCredentials = errors.New("wrong email or password")

type AuthHandler struct {
	svc        *service.AuthService
	signingKey []byte
}

func NewAuthHandler(svc *service.AuthService, signingKey string) *AuthHandler {
	return &AuthHandler{
		svc:        svc,
		signingKey: []byte(signingKey),
	}
}

// Signup godoc
//
//	@Summary  Register a new account
//	@Tags     auth
//	@Accept   json
//	@Produce  json
//	@Param    request body request.SignupRequest true "signup request"
//	@Success  201 {object} domain.User
//	@Failure  400 {object} response.Err
//	@Failure  409 {object} response.Err
//	@Router   /v1/auth/signup [post]
func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Signup(ctx, domain.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(err))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
//
//	@Summary  Log in with email and password
//	@Tags     auth
//	@Accept   json
//	@Produce  json
//	@Param    request body request.LoginRequest true "login request"
//	@Success  200 {object} response.LoginResponse
//	@Failure  400 {object} response.Err
//	@Failure  401 {object} response.Err
//	@Router   /v1/auth/login [post]
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(errWrongCredentials))

			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken(h.signingKey, user.ID, ctx.Request.UserAgent())
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}

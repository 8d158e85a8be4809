package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hearthside/events-api/docs"
	v1 "github.com/hearthside/events-api/internal/api/handler/v1"
	"github.com/hearthside/events-api/internal/api/middleware"
	"github.com/hearthside/events-api/internal/config"
	"github.com/hearthside/events-api/internal/pkg/mailer"
	"github.com/hearthside/events-api/internal/pkg/payments"
	"github.com/hearthside/events-api/internal/repository"
	"github.com/hearthside/events-api/internal/repository/dao"
	"github.com/hearthside/events-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	healthcheckHandler *v1.HealthcheckHandler
	authHandler        *v1.AuthHandler
	userHandler        *v1.UserHandler
	eventHandler       *v1.EventHandler
	orderHandler       *v1.OrderHandler
	ticketHandler      *v1.TicketHandler
	raffleHandler      *v1.RaffleHandler
	rsvpHandler        *v1.RSVPHandler
	submissionHandler  *v1.SubmissionHandler

	authenticator *middleware.Authenticator
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)

	s := &Server{
		Config: conf,
		Router: gin.New(),
	}

	s.initHandlers(db)
	s.authenticator = middleware.NewAuthenticator(conf.API.JWTSigningKey)

	s.MountMiddlewares()
	s.MountHandlers()

	return s
}

func (s *Server) initHandlers(db *gorm.DB) {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	raffleRepo := repository.NewRaffleRepository(dao.NewRaffleDAO(db))
	rsvpRepo := repository.NewRSVPRepository(dao.NewRSVPDAO(db))
	submissionRepo := repository.NewSubmissionRepository(dao.NewSubmissionDAO(db))

	mail := mailer.New(s.Config.SMTP)
	stripeProvider := payments.NewStripeProvider(s.Config.Stripe)

	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo)
	eventSvc := service.NewEventService(eventRepo)
	orderSvc := service.NewOrderService(orderRepo, ticketRepo, stripeProvider)
	ticketSvc := service.NewTicketService(ticketRepo)
	raffleSvc := service.NewRaffleService(raffleRepo, ticketRepo, userRepo)
	rsvpSvc := service.NewRSVPService(rsvpRepo, eventRepo, mail)
	submissionSvc := service.NewSubmissionService(submissionRepo, mail)

	s.healthcheckHandler = v1.NewHealthcheckHandler()
	s.authHandler = v1.NewAuthHandler(authSvc, s.Config.API.JWTSigningKey)
	s.userHandler = v1.NewUserHandler(userSvc)
	s.eventHandler = v1.NewEventHandler(eventSvc, userSvc)
	s.orderHandler = v1.NewOrderHandler(orderSvc, userSvc)
	s.ticketHandler = v1.NewTicketHandler(ticketSvc, userSvc)
	s.raffleHandler = v1.NewRaffleHandler(raffleSvc, userSvc)
	s.rsvpHandler = v1.NewRSVPHandler(rsvpSvc, userSvc)
	s.submissionHandler = v1.NewSubmissionHandler(submissionSvc, userSvc)
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers() {
	s.Router.GET("/", s.healthcheckHandler.Healthcheck)

	docs.SwaggerInfo.BasePath = "/"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	root := s.Router.Group("/v1")

	auth := root.Group("/auth")
	{
		auth.POST("/signup", s.authHandler.Signup)
		auth.POST("/login", s.authHandler.Login)
	}

	events := root.Group("/events")
	{
		events.GET("", s.eventHandler.GetEvents)
		events.GET("/:id", s.eventHandler.GetEvent)
		events.POST("/:id/rsvps", s.rsvpHandler.Submit)

		verified := events.Group("", s.authenticator.VerifyJWT())
		{
			verified.POST("", s.eventHandler.CreateEvent)
			verified.POST("/:id/publish", s.eventHandler.PublishEvent)
			verified.GET("/:id/rsvps", s.rsvpHandler.GetRSVPs)
		}
	}

	root.GET("/admin/events", s.authenticator.VerifyJWT(), s.eventHandler.GetAllEvents)

	raffles := root.Group("/raffles")
	{
		raffles.GET("", s.raffleHandler.GetRaffles)
		raffles.GET("/:id", s.raffleHandler.GetRaffle)
		raffles.GET("/:id/winners", s.raffleHandler.GetWinners)

		verified := raffles.Group("", s.authenticator.VerifyJWT())
		{
			verified.POST("", s.raffleHandler.CreateRaffle)
			verified.POST("/:id/activate", s.raffleHandler.ActivateRaffle)
			verified.POST("/:id/artists", s.raffleHandler.AddArtist)
			verified.POST("/:id/allocations", s.raffleHandler.AllocateTickets)
			verified.POST("/:id/winner", s.raffleHandler.SelectWinner)
		}
	}

	orders := root.Group("/orders", s.authenticator.VerifyJWT())
	{
		orders.POST("/checkout", s.orderHandler.CreateCheckout)
		orders.GET("/me", s.orderHandler.GetOrders)
		orders.POST("/:id/tickets", s.orderHandler.IssueTickets)
	}

	root.GET("/tickets/me", s.authenticator.VerifyJWT(), s.ticketHandler.GetTickets)
	root.GET("/users/me", s.authenticator.VerifyJWT(), s.userHandler.Me)

	rsvps := root.Group("/rsvps", s.authenticator.VerifyJWT())
	{
		rsvps.PATCH("/:id/status", s.rsvpHandler.UpdateStatus)
		rsvps.PATCH("/:id/attendance", s.rsvpHandler.MarkAttendance)
	}

	submissions := root.Group("/submissions")
	{
		submissions.POST("", s.submissionHandler.Create)

		verified := submissions.Group("", s.authenticator.VerifyJWT())
		{
			verified.GET("", s.submissionHandler.List)
			verified.PATCH("/:id/status", s.submissionHandler.UpdateStatus)
		}
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daniyarm/rosterhub/internal/handler/http/middleware"
	appjwt "github.com/daniyarm/rosterhub/internal/infrastructure/jwt"
	"github.com/daniyarm/rosterhub/internal/infrastructure/telegram"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// Router wires handlers onto the gin engine.
type Router struct {
	profileHandler     *ProfileHandler
	rosterHandler      *RosterHandler
	adminHandler       *AdminHandler
	interactionHandler *InteractionHandler
	initDataValidator  *telegram.Validator
	jwtManager         *appjwt.JWTManager
}

// NewRouter creates a new Router.
func NewRouter(
	profileUC usecasecontract.IProfileUseCase,
	rosterUC usecasecontract.IRosterUseCase,
	presenceUC usecasecontract.IPresenceUseCase,
	adminUC usecasecontract.IAdminUseCase,
	likeUC usecasecontract.ILikeUseCase,
	initDataValidator *telegram.Validator,
	jwtManager *appjwt.JWTManager,
	hasher PasswordComparer,
	adminPasswordHash string,
	logger usecasecontract.IAppLogger,
) *Router {
	return &Router{
		profileHandler:     NewProfileHandler(profileUC),
		rosterHandler:      NewRosterHandler(rosterUC, presenceUC),
		adminHandler:       NewAdminHandler(adminUC, jwtManager, hasher, adminPasswordHash, logger),
		interactionHandler: NewInteractionHandler(likeUC),
		initDataValidator:  initDataValidator,
		jwtManager:         jwtManager,
	}
}

// SetupRoutes registers every route on the engine.
func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Telegram-Init-Data"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimiter(10))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	// Public roster snapshot.
	v1.GET("/roster", r.rosterHandler.GetRoster)

	// Admin gate is public; everything behind it is not.
	v1.POST("/admin/login", r.adminHandler.Login)
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuth(r.jwtManager))
	{
		admin.POST("/users/:id/actions", r.adminHandler.ApplyAction)
		admin.POST("/reset", r.adminHandler.ResetAll)
	}

	// Identity-gated participant surface.
	identified := v1.Group("/")
	identified.Use(middleware.Identity(r.initDataValidator))
	{
		identified.POST("/profile/bootstrap", r.profileHandler.Bootstrap)
		identified.GET("/roster/stream", r.rosterHandler.StreamRoster)
		identified.POST("/users/:id/like", middleware.RateLimiter(2), r.interactionHandler.LikeUser)
	}
}

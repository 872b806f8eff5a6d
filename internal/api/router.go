package api

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/admin"
	adminHttp "parkspot-backend/internal/admin/http"
	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/booking"
	bookingHttp "parkspot-backend/internal/booking/http"
	"parkspot-backend/internal/lot"
	lotHttp "parkspot-backend/internal/lot/http"
	"parkspot-backend/internal/user"
	userHttp "parkspot-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         *slog.Logger
	UserService    user.Service
	LotService     lot.Service
	BookingService booking.Service
	AdminService   admin.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (logging, recovery, CORS, auth) and registers the
// routes of every module under /api.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: validates the bearer token and resolves the identity.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: further checks the admin flag against the store.
	adminMiddleware := RequireAdmin(cfg.UserService)

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	userHandler := userHttp.NewHandler(cfg.UserService)
	lotHandler := lotHttp.NewHandler(cfg.LotService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	adminHandler := adminHttp.NewHandler(cfg.AdminService)

	api := r.Group("/api")
	{
		registerAuthRoutes(api, authHandler)
		lotHttp.RegisterRoutes(api, lotHandler)
		bookingHttp.RegisterRoutes(api, bookingHandler, authMiddleware, adminMiddleware)
		userHttp.RegisterRoutes(api, userHandler, authMiddleware, adminMiddleware)

		adminGroup := api.Group("/admin", authMiddleware, adminMiddleware)
		{
			adminHttp.RegisterRoutes(adminGroup, adminHandler, bookingHandler)
			lotHttp.RegisterAdminRoutes(adminGroup, lotHandler)
			userHttp.RegisterAdminRoutes(adminGroup, userHandler)
		}
	}

	return r
}

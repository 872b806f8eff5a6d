package app

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/admin"
	"parkspot-backend/internal/api"
	"parkspot-backend/internal/auth"
	"parkspot-backend/internal/booking"
	"parkspot-backend/internal/lot"
	"parkspot-backend/internal/store"
	"parkspot-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *slog.Logger
	Store        store.Store
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userService := user.NewService(cfg.Store, passwordHasher)

	// Lot/Slot Registry
	lotService := lot.NewService(cfg.Store)

	// Reservation Engine
	bookingService := booking.NewService(cfg.Store)

	// Admin Operations
	adminService := admin.NewService(cfg.Store, bookingService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		LotService:     lotService,
		BookingService: bookingService,
		AdminService:   adminService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}

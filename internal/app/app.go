package app

import (
	"fmt"
	"time"

	"jobportal_backend/database"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter, authService := SetupRouter(cfg, gormDB)

	go cleanupLoop(authService)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, and handlers onto a gin engine.
// It is shared with the integration tests, which pass an sqlite-backed DB.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, services.AuthService) {
	userRepo := repositories.NewUserRepository(gormDB)
	otpRepo := repositories.NewOTPRepository(gormDB)
	resetRepo := repositories.NewPasswordResetRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	appRepo := repositories.NewApplicationRepository(gormDB)

	notifier := email.NewNotifier(email.NewProvider(cfg), cfg.FrontendURL)

	googleProvider := auth.NewGoogleProvider(auth.GoogleConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleCallbackURL,
	})

	authService := services.NewAuthService(userRepo, otpRepo, resetRepo, notifier, googleProvider)
	jobService := services.NewJobService(jobRepo, userRepo)
	applicationService := services.NewApplicationService(appRepo, jobRepo, userRepo, notifier)
	profileService := services.NewProfileService(userRepo)

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	otpLimiter := middleware.NewRateLimiter(cfg.RateLimit.OTPPerWindow, window)
	resetLimiter := middleware.NewRateLimiter(cfg.RateLimit.ResetPerWindow, window)

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, authService, otpLimiter, resetLimiter, cfg.FrontendURL),
		UserHandler:        handlers.NewUserHandler(base, profileService),
		JobHandler:         handlers.NewJobHandler(base, jobService),
		ApplicationHandler: handlers.NewApplicationHandler(base, applicationService),
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, authService
}

// cleanupLoop prunes stale OTP and reset records on the retention cadence.
func cleanupLoop(authService services.AuthService) {
	ticker := time.NewTicker(services.OTPRetention)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpired(); err != nil {
			logger.WithError(err).Warn("Cleanup of expired auth records failed")
		}
	}
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medimeet-api/config"
	deliveryHttp "medimeet-api/internal/delivery/http"
	"medimeet-api/internal/delivery/http/handler"
	"medimeet-api/internal/delivery/http/middleware"
	"medimeet-api/internal/infrastructure/cache"
	"medimeet-api/internal/infrastructure/database"
	"medimeet-api/internal/repository"
	"medimeet-api/internal/service"
	"medimeet-api/internal/usecase"
	"medimeet-api/pkg/jwt"
	"medimeet-api/pkg/metrics"
	"medimeet-api/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const metricsNamespace = "medimeet"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	RateLimiter *middleware.RateLimiter
	Log         *logrus.Logger
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	log := setupLogger()
	app.Log = log

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	setLogLevel(log, cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if err := database.RunMigrations(db, log); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initializeServer(cfg, db, redisClient); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}

func setLogLevel(log *logrus.Logger, level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, keeping %s", level, log.GetLevel())
		return
	}
	log.SetLevel(parsed)
}

// initializeServer wires repositories, services, usecases and handlers into the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) error {
	log := app.Log
	loc := cfg.App.Timezone

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize metrics
	appMetrics := metrics.NewMetrics(metricsNamespace, prometheus.DefaultRegisterer)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	blogPostRepo := repository.NewBlogPostRepository(db)
	recordRepo := repository.NewAppointmentRecordRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	slotCache := service.NewSlotCacheService(redisClient, cfg.App.SlotCacheTTL, log, appMetrics)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, doctorRepo, auditService, jwtService, redisClient)
	userUsecase := usecase.NewUserUsecase(log, userRepo, auditService, authUsecase)
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorRepo, slotCache, auditService)
	slotUsecase := usecase.NewSlotUsecase(log, doctorRepo, bookingRepo, slotCache, appMetrics, loc)
	bookingUsecase := usecase.NewBookingUsecase(log, bookingRepo, doctorRepo, userRepo, slotCache, auditService, appMetrics, loc)
	blogPostUsecase := usecase.NewBlogPostUsecase(log, blogPostRepo)
	recordUsecase := usecase.NewAppointmentRecordUsecase(log, recordRepo, loc)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Seed the admin account
	if cfg.Admin.Email != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := authUsecase.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
	}

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:              handler.NewAuthHandler(authUsecase, customValidator),
		User:              handler.NewUserHandler(userUsecase, customValidator),
		Doctor:            handler.NewDoctorHandler(doctorUsecase, customValidator),
		Booking:           handler.NewBookingHandler(bookingUsecase, slotUsecase, customValidator),
		BlogPost:          handler.NewBlogPostHandler(blogPostUsecase, customValidator),
		AppointmentRecord: handler.NewAppointmentRecordHandler(recordUsecase, customValidator),
		AuditLog:          handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)
	requestLogger := middleware.NewRequestLogger(log, appMetrics)
	app.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, requestLogger, app.RateLimiter, prometheus.DefaultGatherer)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases the rate limiter, database and redis
func (app *App) Close() {
	if app.RateLimiter != nil {
		app.RateLimiter.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

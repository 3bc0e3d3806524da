package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"holo-api/config"
	"holo-api/internal/delivery/dto"
	deliveryHttp "holo-api/internal/delivery/http"
	"holo-api/internal/delivery/http/handler"
	"holo-api/internal/delivery/http/middleware"
	"holo-api/internal/infrastructure/cache"
	"holo-api/internal/infrastructure/database"
	"holo-api/internal/infrastructure/metrics"
	"holo-api/internal/repository"
	"holo-api/internal/service"
	"holo-api/internal/usecase"
	"holo-api/pkg/jwt"
	"holo-api/pkg/password"
	"holo-api/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	RateLimiter *middleware.RateLimiter
}

// Dependencies are the external resources the HTTP layer is built on.
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Log         *logrus.Logger
	Registry    *prometheus.Registry
}

// Services is the wired application: the HTTP handler plus the pieces that
// need lifecycle management or seeding.
type Services struct {
	Handler       http.Handler
	RateLimiter   *middleware.RateLimiter
	AuthUsecase   usecase.AuthUsecase
	PhraseUsecase usecase.PhraseUsecase
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	log := logrus.StandardLogger()
	setupLogger(log)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	setLogLevel(log, cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, gormLogLevel(cfg.App), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database migrated successfully")
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize all layers
	services, err := NewServices(Dependencies{
		Config:      cfg,
		DB:          db,
		RedisClient: redisClient,
		Log:         log,
		Registry:    registry,
	})
	if err != nil {
		return nil, err
	}
	app.RateLimiter = services.RateLimiter

	if cfg.App.SeedData {
		if err := Seed(context.Background(), services, log); err != nil {
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           services.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(log *logrus.Logger) {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
}

func setLogLevel(log *logrus.Logger, level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", level)
		return
	}
	log.SetLevel(parsed)
}

func gormLogLevel(cfg config.AppConfig) logger.LogLevel {
	if cfg.IsDevelopment() {
		return logger.Info
	}
	return logger.Warn
}

// NewServices wires repositories, services, usecases, handlers and the router.
func NewServices(deps Dependencies) (*Services, error) {
	cfg := deps.Config
	db := deps.DB
	log := deps.Log

	// Initialize JWT service
	jwtService, err := jwt.NewJWTService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher := password.NewHasher(cfg.Security.BcryptCost)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	psychologistProfileRepo := repository.NewPsychologistProfileRepository()
	relationshipRepo := repository.NewRelationshipRepository()
	avatarRepo := repository.NewAvatarRepository()
	drawingRepo := repository.NewDrawingRepository()
	conversationLogRepo := repository.NewConversationLogRepository()
	phraseRepo := repository.NewPhraseRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	loginThrottle := service.NewLoginThrottleService(deps.RedisClient, log, service.LoginThrottleConfig{
		MaxAttempts: cfg.Security.LoginMaxAttempts,
		Window:      cfg.Security.LoginLockoutWindow,
	})

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientProfileRepo, psychologistProfileRepo, auditService, loginThrottle, jwtService, hasher)
	accountUsecase := usecase.NewAccountUsecase(db, log, userRepo, patientProfileRepo, psychologistProfileRepo, relationshipRepo, avatarRepo, drawingRepo, conversationLogRepo, auditService, hasher)
	relationshipUsecase := usecase.NewRelationshipUsecase(db, log, userRepo, relationshipRepo, auditService)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, patientProfileRepo, psychologistProfileRepo, relationshipRepo, auditService)
	contentUsecase := usecase.NewContentUsecase(db, log, userRepo, relationshipRepo, avatarRepo, drawingRepo, conversationLogRepo)
	phraseUsecase := usecase.NewPhraseUsecase(db, log, phraseRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Metrics
	collector := metrics.NewCollector(deps.Registry)

	// Health reports Redis as disabled when no client is configured.
	var healthRedis redis.UniversalClient
	if deps.RedisClient != nil {
		healthRedis = deps.RedisClient
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db, healthRedis, log)
	authHandler := handler.NewAuthHandler(authUsecase, accountUsecase, customValidator, collector, log)
	accountHandler := handler.NewAccountHandler(accountUsecase, auditLogUsecase, customValidator, log)
	relationshipHandler := handler.NewRelationshipHandler(relationshipUsecase, customValidator, collector, log)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator, log)
	contentHandler := handler.NewContentHandler(contentUsecase, customValidator, log)
	phraseHandler := handler.NewPhraseHandler(phraseUsecase, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:              rate.Limit(cfg.RateLimit.RequestsPerSecond),
		Burst:             cfg.RateLimit.Burst,
		TrustForwardedFor: cfg.RateLimit.TrustProxy,
	}, log)

	// Initialize router
	router := deliveryHttp.NewRouter(deliveryHttp.RouterConfig{
		HealthHandler:       healthHandler,
		AuthHandler:         authHandler,
		AccountHandler:      accountHandler,
		RelationshipHandler: relationshipHandler,
		ProfileHandler:      profileHandler,
		ContentHandler:      contentHandler,
		PhraseHandler:       phraseHandler,
		MetricsHandler:      metrics.Handler(deps.Registry),
		AuthMiddleware:      middleware.NewAuthMiddleware(authUsecase, log),
		CORSMiddleware:      middleware.NewCORSMiddleware(""),
		LoggingMiddleware:   middleware.NewLoggingMiddleware(log),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(collector),
		RateLimiter:         rateLimiter,
	})

	return &Services{
		Handler:       router.Setup(),
		RateLimiter:   rateLimiter,
		AuthUsecase:   authUsecase,
		PhraseUsecase: phraseUsecase,
	}, nil
}

// Seed loads the default phrases into an empty table and creates the demo
// accounts. Accounts that already exist are left alone.
func Seed(ctx context.Context, services *Services, log *logrus.Logger) error {
	inserted, err := services.PhraseUsecase.SeedDefaults(ctx, database.DefaultPhrases())
	if err != nil {
		return err
	}
	if inserted > 0 {
		log.Infof("Seeded %d phrases", inserted)
	}

	for _, account := range database.DefaultAccounts() {
		_, err := services.AuthUsecase.Register(ctx, &dto.RegisterRequest{
			Email:    account.Email,
			Password: account.Password,
			Name:     account.Name,
			Surname:  account.Surname,
			Role:     account.Role.String(),
		})
		if err != nil {
			if errors.Is(err, usecase.ErrEmailAlreadyRegistered) {
				continue
			}
			return err
		}
		log.Infof("Seeded account %s", account.Email)
	}

	return nil
}

// Run serves HTTP until SIGINT/SIGTERM or a listener failure, then shuts
// the server down and releases every connection.
func (app *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"port": app.Config.App.Port,
			"env":  app.Config.App.Env,
		}).Info("Server starting")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		logrus.Infof("Received %s, shutting down server...", sig)
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	app.shutdown()
	return runErr
}

func (app *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Drain in-flight requests before closing the pools they use
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and closes all connections
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

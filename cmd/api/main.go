package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/duckwolf_api/internal/advisory"
	"github.com/GTDGit/duckwolf_api/internal/config"
	"github.com/GTDGit/duckwolf_api/internal/database"
	"github.com/GTDGit/duckwolf_api/internal/events"
	"github.com/GTDGit/duckwolf_api/internal/handler"
	"github.com/GTDGit/duckwolf_api/internal/metrics"
	"github.com/GTDGit/duckwolf_api/internal/middleware"
	"github.com/GTDGit/duckwolf_api/internal/models"
	"github.com/GTDGit/duckwolf_api/internal/notify"
	"github.com/GTDGit/duckwolf_api/internal/service"
	"github.com/GTDGit/duckwolf_api/internal/sse"
	"github.com/GTDGit/duckwolf_api/internal/state"
	"github.com/GTDGit/duckwolf_api/internal/store"
	"github.com/GTDGit/duckwolf_api/internal/utils"
	"github.com/GTDGit/duckwolf_api/internal/worker"
	"github.com/GTDGit/duckwolf_api/pkg/gemini"
)

// main is the application entrypoint for the duckwolf barter dashboard API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store.Driver).Msg("starting duckwolf api")

	// 3. Context for startup and graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	// 4. Open the persistent store
	backend, pinger, err := openBackend(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("store initialization failed")
		fmt.Fprintf(os.Stderr, "store initialization failed: %v\n", err)
		os.Exit(1)
	}
	kv := store.New(backend, cfg.Store.KeyPrefix, m)
	defer kv.Close()

	// 5. Notification fan-out: SSE clients, plus Kafka when brokers are configured
	hub := sse.NewHub(m)
	sinks := notify.Multi{hub}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaNotifier := events.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.NotifyTopic, m)
		defer kafkaNotifier.Close()
		sinks = append(sinks, kafkaNotifier)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.NotifyTopic).Msg("kafka notification publisher enabled")
	}
	notes := notify.NewLog(notify.WithNotifier(sinks))

	// 6. Domain state
	controller := state.New(ctx, kv, notes)

	// 7. AI advisory gateway; no key means offline answers only
	var gen advisory.Generator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
			Timeout: cfg.Gemini.Timeout,
		})
		if err != nil {
			log.Error().Err(err).Msg("gemini client initialization failed")
			fmt.Fprintf(os.Stderr, "gemini client initialization failed: %v\n", err)
			os.Exit(1)
		}
		gen = client
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - advisory runs in offline mode")
	}
	breaker := advisory.NewBreaker(advisory.BreakerConfig{
		Name:             "gemini",
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	}, m)
	gateway, err := advisory.New(gen, advisory.WithBreaker(breaker), advisory.WithMetrics(m))
	if err != nil {
		log.Error().Err(err).Msg("advisory gateway initialization failed")
		fmt.Fprintf(os.Stderr, "advisory gateway initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 8. Services
	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	adminAuthSvc := service.NewAdminAuthService(cfg.Admin, issuer)
	advisorySvc := service.NewAdvisoryService(controller, gateway)

	loginLimiter := middleware.NewFailureRateLimiter(5, time.Minute)
	go loginLimiter.Cleanup(ctx, 5*time.Minute)

	// 9. Handlers
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(cfg.Store.Driver, pinger, gateway.Configured()),
		Auth:         handler.NewAuthHandler(adminAuthSvc, loginLimiter),
		Inventory:    handler.NewInventoryHandler(controller),
		Media:        handler.NewMediaHandler(controller),
		Channels:     handler.NewChannelHandler(controller),
		Plans:        handler.NewPlanHandler(controller),
		Settings:     handler.NewSettingsHandler(controller),
		Dashboard:    handler.NewDashboardHandler(controller),
		Notification: handler.NewNotificationHandler(notes, hub),
		Advisory:     handler.NewAdvisoryHandler(advisorySvc),
	}

	// 10. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware(m))

	var jwtMw *middleware.JWTMiddleware
	if cfg.AuthEnabled() {
		jwtMw = middleware.NewJWTMiddleware(issuer)
	} else {
		log.Warn().Msg("JWT_SECRET not set - dashboard routes are unauthenticated")
	}
	setupRoutes(router, handlers, jwtMw, m)

	// 11. Start workers
	go worker.NewAlertWorker(controller, cfg.Worker.AlertInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Inventory    *handler.CollectionHandler[models.InventoryItem, models.InventoryPatch]
	Media        *handler.CollectionHandler[models.MediaResource, models.MediaPatch]
	Channels     *handler.CollectionHandler[models.SalesChannel, models.ChannelPatch]
	Plans        *handler.CollectionHandler[models.PricingPlan, models.PlanPatch]
	Settings     *handler.SettingsHandler
	Dashboard    *handler.DashboardHandler
	Notification *handler.NotificationHandler
	Advisory     *handler.AdvisoryHandler
}

// setupRoutes registers all routes. A nil jwtMiddleware leaves the dashboard open.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, m *metrics.Metrics) {
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	v1 := router.Group("/v1")
	if jwtMiddleware != nil {
		v1.Use(jwtMiddleware.Handle())
	}
	{
		handlers.Inventory.Register(v1.Group("/inventory"))
		handlers.Media.Register(v1.Group("/media"))
		handlers.Channels.Register(v1.Group("/channels"))
		handlers.Plans.Register(v1.Group("/plans"))

		v1.GET("/settings", handlers.Settings.Get)
		v1.PUT("/settings", handlers.Settings.Update)

		v1.GET("/dashboard/summary", handlers.Dashboard.Summary)
		v1.GET("/snapshot", handlers.Dashboard.ExportSnapshot)
		v1.PUT("/snapshot", handlers.Dashboard.ImportSnapshot)

		v1.GET("/notifications", handlers.Notification.List)
		v1.GET("/notifications/stream", handlers.Notification.Stream)
		v1.POST("/notifications/:id/read", handlers.Notification.MarkRead)
		v1.DELETE("/notifications", handlers.Notification.ClearAll)

		v1.POST("/advisory/pricing/:id", handlers.Advisory.AnalyzePricing)
		v1.POST("/advisory/risk", handlers.Advisory.AssessRisk)
		v1.POST("/advisory/optimize", handlers.Advisory.OptimizePricing)
		v1.POST("/advisory/simulate", handlers.Advisory.SimulateFinancials)
		v1.POST("/advisory/research/:id", handlers.Advisory.ResearchProduct)
	}
}

// openBackend builds the configured store backend. The returned Pinger is nil
// for backends without a live connection.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, handler.Pinger, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return store.NewMemoryBackend(), nil, nil

	case config.StoreFile:
		b, err := store.NewFileBackend(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil

	case config.StoreRedis:
		b, err := store.NewRedisBackend(&cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info().Msg("redis connected successfully")
		return b, b, nil

	case config.StorePostgres:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := database.Migrate(db.DB, "file://migrations"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info().Msg("migrations completed successfully")
		b := store.NewPostgresBackend(db)
		return b, b, nil

	case config.StoreS3:
		b, err := store.NewS3Backend(ctx, &cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("s3 initialization failed: %w", err)
		}
		return b, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

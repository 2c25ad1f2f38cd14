package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/hoteldesk/chat-admin/src/config"
	"github.com/hoteldesk/chat-admin/src/database"
	"github.com/hoteldesk/chat-admin/src/handlers"
	"github.com/hoteldesk/chat-admin/src/logging"
	"github.com/hoteldesk/chat-admin/src/middleware"
	"github.com/hoteldesk/chat-admin/src/models"
	"github.com/hoteldesk/chat-admin/src/services"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup(logging.Config{Level: "info", Format: "json"})
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	identity, err := models.NewAdminIdentity(cfg.AdminUsers, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load admin identity")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	authService, err := services.NewAuthService(identity, cfg.SessionSecret, cfg.SessionTTL, db.GetPool())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth service")
	}
	engagementService := services.NewEngagementService(db.GetPool())
	transcriptService := services.NewTranscriptService(db.GetPool())
	customerService := services.NewCustomerService(db.GetPool())
	cleanupService := services.NewCleanupService(db.GetPool(), cfg.EnableSessionCleanup)

	cleanupService.Start(context.Background())

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(metrics.Instrument())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost", "http://localhost:" + cfg.Port},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.LoadHTMLGlob("./src/templates/*.html")
	router.Static("/static", "./static")

	setupRoutes(router, db, authService, engagementService, transcriptService, customerService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	cleanupService.Stop()

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

func setupRoutes(
	router *gin.Engine,
	db *database.Database,
	authService *services.AuthService,
	engagementService *services.EngagementService,
	transcriptService *services.TranscriptService,
	customerService *services.CustomerService,
) {
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(engagementService)
	chatHandler := handlers.NewChatHandler(transcriptService)
	actionsHandler := handlers.NewActionsHandler(customerService)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	// Health check endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Login is rate limited per IP; everything else sits behind the
	// session gate with no exceptions.
	router.GET("/login", authHandler.HandleLoginPage)
	router.POST("/login", middleware.LoginRateLimitMiddleware(), authHandler.HandleLogin)

	auth := middleware.AdminSession(authService)
	router.GET("/logout", auth, authHandler.HandleLogout)
	router.GET("/dashboard", auth, dashboardHandler.HandleDashboard)
	router.GET("/users", auth, dashboardHandler.HandleListUsers)
	router.GET("/chat/:key", auth, chatHandler.HandleChatHistory)
	router.POST("/toggle-ai/:key", auth, actionsHandler.HandleToggleAI)
	router.POST("/set-ai/:key", auth, actionsHandler.HandleSetAI)
	router.POST("/send-message", auth, actionsHandler.HandleSendMessage)
}

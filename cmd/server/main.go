package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "lead_scoring/docs"
	"lead_scoring/internal/config"
	"lead_scoring/internal/handler"
	"lead_scoring/internal/repository"
	"lead_scoring/internal/scoring"
	"lead_scoring/internal/service"
	"lead_scoring/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// @title        Lead Scoring API
// @version      1.0
// @description  Ranks bank customers by predicted conversion score for the sales dashboard.
// @BasePath     /api
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.ConfigureLogging(cfg.Log); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	// --- Database Connection ---
	ctx := context.Background()
	dbPool, err := config.ConnectDB(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if cfg.Database.AutoMigrate {
		if err := config.AutoMigrate(ctx, dbPool); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
	}

	// --- Initialize Utilities ---
	var jwtUtil *utils.JWTUtil
	if cfg.Auth.TokenMode() {
		jwtUtil = utils.NewJWTUtil(cfg.Auth.JWTSecret, cfg.Auth.JWTExpirationHours)
	}
	runner := scoring.NewCommandRunner(cfg.ML.Command, cfg.ML.Script, cfg.ML.Timeout)
	log.WithFields(log.Fields{"component": "scoring", "command": runner.String(), "timeout": cfg.ML.Timeout}).Info("Scoring command configured")

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	leadRepo := repository.NewLeadRepository(dbPool)
	scoreRepo := repository.NewScoreRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	userService := service.NewUserService(userRepo)
	leadService := service.NewLeadService(leadRepo, scoreRepo, runner)

	// --- Setup Gin Router ---
	router := handler.NewRouter(handler.RouterDeps{
		Auth:  authService,
		Users: userService,
		Leads: leadService,
		DB:    dbPool,
		JWT:   jwtUtil,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting")
}

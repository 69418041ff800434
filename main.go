// File: bookassist/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookassist/config"
	"bookassist/cron"
	"bookassist/handlers"
	"bookassist/middleware"
	"bookassist/routes"
	ai "bookassist/services/intelligence"
	"bookassist/services/ratelimit"
	"bookassist/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	cfg := config.AppConfig

	// The limiter lives as long as the server and is swept on a schedule.
	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)
	stopSweeper, err := cron.StartSweeper(cfg.RateLimitSweep, limiter, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start rate limiter sweeper: %v", err)
	}
	defer stopSweeper()

	opts := []ai.Option{
		ai.WithTimeout(cfg.AssistantTimeout),
		ai.WithLogger(logger),
	}
	if cfg.UpstreamRPS > 0 {
		opts = append(opts, ai.WithThrottle(rate.NewLimiter(rate.Limit(cfg.UpstreamRPS), max(cfg.UpstreamBurst, 1))))
	}
	assistantSvc := ai.NewDefaultAssistantService(
		ai.NewGeminiGenerator(cfg.GeminiModel, cfg.GeminiEndpoint),
		config.GeminiAPIKey,
		opts...,
	)
	if config.GeminiAPIKey() == "" {
		logger.Warn("main: GEMINI_API_KEY is not set; assistant replies will be generated locally")
	}

	assistantHandler := handlers.NewAssistantHandler(assistantSvc, cfg.AssistantMaxServices, cfg.AssistantMaxBodyBytes, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID(logger))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		Logger:           logger,
		AssistantLimiter: limiter,
		AssistantHandler: assistantHandler.HandleAssistantRequest,
	})

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	// In-flight assistant calls may wait on the provider deadline.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.AssistantTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentscrape-go/pkg/api"
	"agentscrape-go/pkg/cli/logger"
	"agentscrape-go/pkg/config"
	"agentscrape-go/pkg/services"
	"agentscrape-go/pkg/store"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	log := logger.New(nil, "info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}
	log = logger.New(nil, cfg.CLI.LogLevel)

	if cfg.CLI.LogLevel != "debug" && cfg.CLI.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	service := services.NewAgentService(store.NewMemoryStore(), cfg.ScrapeDuration())

	// Initialize router
	router := api.NewRouter(service, log)

	// Create server
	srv := &http.Server{
		Addr:         cfg.APIAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Dur("scrape_duration", cfg.ScrapeDuration()).
			Msg("development API server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exited")
}

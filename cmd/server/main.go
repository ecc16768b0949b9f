package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ai-picks-site/internal/api"
	"github.com/ai-picks-site/internal/cms"
	"github.com/ai-picks-site/internal/config"
	"github.com/ai-picks-site/internal/database"
	"github.com/ai-picks-site/internal/repository"
	"github.com/ai-picks-site/internal/service"
	"github.com/ai-picks-site/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Logger options come from the config, so fall back to defaults here
		log := logger.New(logger.Options{Env: os.Getenv("ENV")})
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Env:    cfg.Log.Env,
	})
	log.Info().Str("cms_driver", cfg.CMS.Driver).Msg("Starting AI picks site...")

	if cfg.Log.Env == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// The postgres driver serves content from a local database
	var (
		db     *database.DB
		health api.HealthChecker
	)
	if cfg.CMS.Driver == config.DriverPostgres {
		db, err = database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		health = db
	}

	// Initialize content bucket
	bucket, err := cms.New(cfg.CMS, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize content bucket")
	}

	// Initialize repositories
	repos := repository.New(bucket, cfg.CMS.SettingsSlug)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log, health)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

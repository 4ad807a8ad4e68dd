/*
main.go - Application entry point

PURPOSE:
  Starts the grade calculator HTTP API.
  Handles configuration, logging setup, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env files + GRADEPOINT_* environment)
  2. Configure zerolog
  3. Create API handler and router
  4. Start server with graceful shutdown

ENVIRONMENT:
  GRADEPOINT_ENV              development (console logs) or anything else (JSON logs)
  GRADEPOINT_PORT             HTTP port (default: 8080)
  GRADEPOINT_LOGLEVEL         debug, info, warn, error (default: info)
  GRADEPOINT_CORSORIGINS      Allowed origins, comma or space separated
  GRADEPOINT_READTIMEOUT      e.g. 15s
  GRADEPOINT_WRITETIMEOUT     e.g. 15s
  GRADEPOINT_IDLETIMEOUT      e.g. 60s
  GRADEPOINT_SHUTDOWNTIMEOUT  e.g. 30s

COMMAND-LINE FLAGS:
  -config  Directory holding .env files (default: current directory)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (shutdown timeout)
  3. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration loading
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/warp/gradepoint/api"
	"github.com/warp/gradepoint/config"
)

var version = "dev"

func main() {
	configDir := flag.String("config", ".", "Directory holding .env files")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)

	router := api.NewRouter(api.NewHandler(version), api.RouterOptions{
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         log.Logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Int("port", cfg.Port).
			Str("env", cfg.Env).
			Str("version", version).
			Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"genrelay/internal/config"
	"genrelay/internal/domain/generation"
	"genrelay/internal/infrastructure/gemini"
	"genrelay/internal/infrastructure/logger"
	"genrelay/internal/infrastructure/observability"
	"genrelay/internal/infrastructure/upload"
	"genrelay/internal/interfaces/httpserver"
)

// @title Generation Relay API
// @version 1.0
// @description HTTP relay that forwards text, image, document, and audio submissions to a generative model
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	geminiClient, err := gemini.NewClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize gemini client")
	}

	uploadStore, err := upload.NewStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize upload store")
	}

	service := generation.NewService(geminiClient, uploadStore, log)

	httpServer := httpserver.New(cfg, log, service, uploadStore)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"genrelay/internal/config"
	"genrelay/internal/domain/generation"
	"genrelay/internal/infrastructure/gemini"
	"genrelay/internal/infrastructure/logger"
	"genrelay/internal/infrastructure/upload"
	"genrelay/internal/interfaces/httpserver"
)

var relaySet = wire.NewSet(
	gemini.NewClient,
	wire.Bind(new(generation.Generator), new(*gemini.Client)),
	upload.NewStore,
	wire.Bind(new(generation.UploadStore), new(*upload.Store)),
	generation.NewService,
)

// BuildApplication assembles the relay service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		relaySet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

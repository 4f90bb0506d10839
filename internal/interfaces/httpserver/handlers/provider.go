package handlers

import (
	"github.com/rs/zerolog"

	"genrelay/internal/domain/generation"
)

// Provider wires HTTP handlers.
type Provider struct {
	Generate *GenerateHandler
}

func NewProvider(service *generation.Service, uploads generation.UploadStore, log zerolog.Logger) *Provider {
	return &Provider{
		Generate: NewGenerateHandler(service, uploads, log),
	}
}

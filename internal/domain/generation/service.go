package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Service orchestrates request translation: validate the submission, read
// and encode binary content, relay to the generator, and release the
// temporary upload on every exit path.
type Service struct {
	generator Generator
	uploads   UploadStore
	log       zerolog.Logger
}

func NewService(generator Generator, uploads UploadStore, log zerolog.Logger) *Service {
	return &Service{
		generator: generator,
		uploads:   uploads,
		log:       log.With().Str("component", "generation-service").Logger(),
	}
}

// GenerateText relays a plain prompt. A blank prompt is rejected explicitly
// rather than forwarded.
func (s *Service) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrPromptRequired
	}
	out, err := s.generator.Generate(ctx, prompt, nil)
	if err != nil {
		return "", s.providerErr("text", err)
	}
	return out, nil
}

// DescribeImage relays an uploaded image with an optional prompt. The
// detected MIME type must be on the image allow-list. The upload is removed
// whether generation succeeds or not.
func (s *Service) DescribeImage(ctx context.Context, upload *TempUpload, prompt string) (string, error) {
	defer s.release(upload)

	if !imageMIMEAllowed(upload.MIMEType) {
		return "", &UnsupportedMediaTypeError{MIMEType: upload.MIMEType}
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultImagePrompt
	}
	return s.generateFromUpload(ctx, "image", upload, prompt)
}

// AnalyzeDocument relays an uploaded document with a fixed instruction. Any
// detected MIME type is forwarded as-is; the provider decides whether it can
// handle the format.
func (s *Service) AnalyzeDocument(ctx context.Context, upload *TempUpload) (string, error) {
	defer s.release(upload)
	return s.generateFromUpload(ctx, "document", upload, DocumentInstruction)
}

// TranscribeAudio relays an uploaded audio file with a fixed instruction.
// No allow-list is enforced, matching the document route.
func (s *Service) TranscribeAudio(ctx context.Context, upload *TempUpload) (string, error) {
	defer s.release(upload)
	return s.generateFromUpload(ctx, "audio", upload, AudioInstruction)
}

func (s *Service) generateFromUpload(ctx context.Context, route string, upload *TempUpload, prompt string) (string, error) {
	data, err := s.uploads.Read(upload)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	part := &InlinePart{Data: data, MIMEType: upload.MIMEType}
	out, err := s.generator.Generate(ctx, prompt, part)
	if err != nil {
		return "", s.providerErr(route, err)
	}
	return out, nil
}

// release deletes the temporary upload. Removal is guarded: a file that is
// already gone is not an error.
func (s *Service) release(upload *TempUpload) {
	if upload == nil {
		return
	}
	if err := s.uploads.Remove(upload); err != nil {
		s.log.Error().Err(err).Str("path", upload.Path).Msg("remove temporary upload")
	}
}

func (s *Service) providerErr(route string, err error) error {
	s.log.Error().
		Err(err).
		Str("route", route).
		Bool("provider_error", strings.Contains(err.Error(), ProviderErrorMarker)).
		Msg("generation relay failed")
	return err
}

func imageMIMEAllowed(mimeType string) bool {
	for _, allowed := range AllowedImageMIMEs {
		if mimeType == allowed {
			return true
		}
	}
	return false
}

package generation

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
)

// Fixed prompts relayed alongside binary parts.
const (
	DefaultImagePrompt  = "Describe the image"
	DocumentInstruction = "Analyze this document:"
	AudioInstruction    = "Transcribe or analyze the following audio:"
)

// ProviderErrorMarker identifies provider-side generation failures in error
// strings. Informational only; all provider failures surface the same way.
const ProviderErrorMarker = "generation failed"

// AllowedImageMIMEs is the accepted set for the image route. Detection is
// content based, never filename based.
var AllowedImageMIMEs = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// ErrPromptRequired is returned when the text route receives no prompt.
var ErrPromptRequired = errors.New("prompt is required")

// UnsupportedMediaTypeError reports an upload outside the image allow-list.
type UnsupportedMediaTypeError struct {
	MIMEType string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("unsupported media type %s, supported types: %s",
		e.MIMEType, strings.Join(AllowedImageMIMEs, ", "))
}

// TempUpload describes a multipart file persisted to ephemeral storage for
// the duration of one request.
type TempUpload struct {
	Path     string
	Filename string
	MIMEType string
	Bytes    int64
}

// InlinePart carries binary content paired with its MIME type for a single
// multi-modal generation request.
type InlinePart struct {
	Data     []byte
	MIMEType string
}

// Generator is the external text-generation capability. At most one inline
// part accompanies the prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, part *InlinePart) (string, error)
}

// UploadStore persists incoming multipart files to temporary storage and
// releases them when the request is done.
type UploadStore interface {
	Save(fileHeader *multipart.FileHeader) (*TempUpload, error)
	Read(upload *TempUpload) ([]byte, error)
	Remove(upload *TempUpload) error
}

package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"genrelay/internal/config"
	"genrelay/internal/domain/generation"
	"genrelay/internal/infrastructure/metrics"
	"genrelay/utils/mimeutil"
)

// ErrTooLarge is returned when an upload exceeds the configured size limit.
var ErrTooLarge = errors.New("upload exceeds the maximum allowed size")

// Store writes multipart uploads to ephemeral storage. Each upload gets a
// distinct ULID-named path, so concurrent requests never contend.
type Store struct {
	dir      string
	maxBytes int64
	log      zerolog.Logger
}

// NewStore creates the temporary upload store, defaulting to the OS temp
// directory when no upload dir is configured.
func NewStore(cfg *config.Config, log zerolog.Logger) (*Store, error) {
	dir := cfg.UploadDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "genrelay-uploads")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	logger := log.With().Str("component", "upload-store").Logger()
	logger.Info().Str("dir", dir).Int64("max_bytes", cfg.MaxUploadBytes).Msg("upload store initialized")

	return &Store{
		dir:      dir,
		maxBytes: cfg.MaxUploadBytes,
		log:      logger,
	}, nil
}

// Save persists the multipart file and detects its content type from the
// stored bytes. Filename extension is only consulted when sniffing fails.
func (s *Store) Save(fileHeader *multipart.FileHeader) (*generation.TempUpload, error) {
	if s.maxBytes > 0 && fileHeader.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, fileHeader.Size)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open multipart file: %w", err)
	}
	defer src.Close()

	// ulid.Make is safe for concurrent Save calls; each request gets its
	// own distinct path.
	name := strings.ToLower(ulid.Make().String()) + filepath.Ext(fileHeader.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create temporary file: %w", err)
	}

	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write temporary file: %w", err)
	}

	mimeType := s.detectMIME(path, fileHeader.Filename)
	metrics.UploadBytesTotal.WithLabelValues(mimeType).Add(float64(written))

	s.log.Debug().
		Str("path", path).
		Str("mime", mimeType).
		Int64("bytes", written).
		Msg("temporary upload stored")

	return &generation.TempUpload{
		Path:     path,
		Filename: fileHeader.Filename,
		MIMEType: mimeType,
		Bytes:    written,
	}, nil
}

// Read loads the stored upload into memory.
func (s *Store) Read(upload *generation.TempUpload) ([]byte, error) {
	return os.ReadFile(upload.Path)
}

// Remove deletes the stored upload. A missing file is not an error; the
// request may have already released it.
func (s *Store) Remove(upload *generation.TempUpload) error {
	err := os.Remove(upload.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove temporary file: %w", err)
	}
	return nil
}

func (s *Store) detectMIME(path, filename string) string {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("content sniffing failed, falling back to extension")
		return mimeutil.FromExtension(filename)
	}
	// Strip parameters such as "; charset=utf-8" before allow-list checks.
	mimeType := detected.String()
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}

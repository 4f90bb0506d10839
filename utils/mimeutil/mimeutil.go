package mimeutil

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FallbackType is returned for extensions outside the known mapping.
const FallbackType = "application/octet-stream"

var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// FromExtension resolves a MIME type from the filename extension,
// case-insensitively. Unknown extensions fall back to a generic binary type.
// Content sniffing is preferred where the bytes are available; this is the
// secondary path.
func FromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mime, ok := extensionTypes[ext]; ok {
		return mime
	}
	log.Warn().
		Str("filename", filename).
		Str("extension", ext).
		Str("fallback", FallbackType).
		Msg("unrecognized file extension, using generic MIME type")
	return FallbackType
}

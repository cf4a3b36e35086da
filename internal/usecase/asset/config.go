package asset

import "fmt"

// DefaultMaxFileSize is the payload ceiling applied when a category has no
// override configured.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10 MiB

var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func IsMimeTypeAllowed(mimeType string) bool {
	return AllowedMimeTypes[mimeType]
}

var mimeToExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// MimeTypeToExtension returns the canonical extension recorded in the asset
// identifier for a declared media type.
func MimeTypeToExtension(mimeType string) (string, error) {
	ext, ok := mimeToExt[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaType, mimeType)
	}
	return ext, nil
}

// FormatToMimeType maps an image.DecodeConfig format name back to its media
// type, for checking a declared type against the actual payload.
func FormatToMimeType(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

// SizeLimits carries the payload ceilings per calling context: a global
// default plus per-category overrides (e.g. a tighter one for
// profile-images).
type SizeLimits struct {
	Default     int64
	PerCategory map[string]int64
}

func (l SizeLimits) For(category string) int64 {
	if limit, ok := l.PerCategory[category]; ok && limit > 0 {
		return limit
	}
	if l.Default > 0 {
		return l.Default
	}
	return DefaultMaxFileSize
}

package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines file storage operations over the upload root. File keys
// are the resolver's "<category>/<file>" form; implementations own the
// mapping to real locations.
type Storage interface {
	InitCategory(category string) error
	FileExists(ctx context.Context, fileKey string) (bool, error)
	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
	GetFile(ctx context.Context, fileKey string) (io.ReadSeekCloser, error)
	SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	RemoveFile(ctx context.Context, fileKey string) error
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
	"github.com/mbeaumont/assets-ms-go/internal/usecase/asset"
)

// FsStorage persists files under a single upload root on the local
// filesystem. File keys are the resolver's "<category>/<file>" form; it is
// the only component that knows where the root actually lives.
type FsStorage struct {
	root string
}

// compile-time check: *FsStorage must satisfy port.Storage
var _ port.Storage = (*FsStorage)(nil)

func NewStorage(root string) (*FsStorage, error) {
	log.Printf("initialising filesystem storage at %q...", root)
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, mapFsErr(err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, mapFsErr(err)
	}
	return &FsStorage{root: abs}, nil
}

// resolve maps a file key to an absolute path, refusing anything that would
// land outside the upload root.
func (s *FsStorage) resolve(fileKey string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(fileKey))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: file key %q escapes upload root", asset.ErrInternal, fileKey)
	}
	return filepath.Join(s.root, cleaned), nil
}

// InitCategory creates the category directory. MkdirAll succeeds when the
// directory already exists, so two concurrent first uploads cannot fail
// each other.
func (s *FsStorage) InitCategory(category string) error {
	if err := storagepath.ValidateCategory(category); err != nil {
		return err
	}
	return mapFsErr(os.MkdirAll(filepath.Join(s.root, category), 0o755))
}

func (s *FsStorage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	_, err := s.StatFile(ctx, fileKey)
	if errors.Is(err, asset.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FsStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	path, err := s.resolve(fileKey)
	if err != nil {
		return port.FileInfo{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return port.FileInfo{}, mapFsErr(err)
	}
	if info.IsDir() {
		return port.FileInfo{}, asset.ErrObjectNotFound
	}
	return port.FileInfo{
		SizeBytes:   info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func (s *FsStorage) GetFile(ctx context.Context, fileKey string) (io.ReadSeekCloser, error) {
	path, err := s.resolve(fileKey)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, mapFsErr(err)
	}
	return f, nil
}

// SaveFile writes through a temp file in the target directory and renames
// it into place, so a partially written file is never visible under the
// final key.
func (s *FsStorage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	path, err := s.resolve(fileKey)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return mapFsErr(err)
	}

	tmp, err := os.CreateTemp(dir, ".upload_*")
	if err != nil {
		return mapFsErr(err)
	}
	if _, err := io.Copy(tmp, reader); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return mapFsErr(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return mapFsErr(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return mapFsErr(err)
	}
	return nil
}

func (s *FsStorage) RemoveFile(ctx context.Context, fileKey string) error {
	path, err := s.resolve(fileKey)
	if err != nil {
		return err
	}
	return mapFsErr(os.Remove(path))
}

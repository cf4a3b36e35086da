package asset

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
)

// mockStorage is an in-memory port.Storage used by the tests in this
// package. Errors can be injected globally or per file key.
type mockStorage struct {
	mu    sync.Mutex
	files map[string][]byte

	initErr   error
	getErr    error
	statErr   error
	removeErr error
	saveErr   error
	// saveErrOn fails SaveFile for one specific key only.
	saveErrOn map[string]error

	initCalled    bool
	savedKeys     []string
	removedKeys   []string
	removeAttempt []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{files: map[string][]byte{}}
}

func (m *mockStorage) InitCategory(category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalled = true
	return m.initErr
}

func (m *mockStorage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[fileKey]
	return ok, nil
}

func (m *mockStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statErr != nil {
		return port.FileInfo{}, m.statErr
	}
	data, ok := m.files[fileKey]
	if !ok {
		return port.FileInfo{}, ErrObjectNotFound
	}
	return port.FileInfo{SizeBytes: int64(len(data))}, nil
}

func (m *mockStorage) GetFile(ctx context.Context, fileKey string) (io.ReadSeekCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.files[fileKey]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return nopSeekCloser{bytes.NewReader(data)}, nil
}

func (m *mockStorage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if err, ok := m.saveErrOn[fileKey]; ok {
		return err
	}
	m.files[fileKey] = data
	m.savedKeys = append(m.savedKeys, fileKey)
	return nil
}

func (m *mockStorage) RemoveFile(ctx context.Context, fileKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeAttempt = append(m.removeAttempt, fileKey)
	if m.removeErr != nil {
		return m.removeErr
	}
	if _, ok := m.files[fileKey]; !ok {
		return ErrObjectNotFound
	}
	delete(m.files, fileKey)
	m.removedKeys = append(m.removedKeys, fileKey)
	return nil
}

type nopSeekCloser struct{ *bytes.Reader }

func (nopSeekCloser) Close() error { return nil }

// mockDeriver implements port.Deriver.
type mockDeriver struct {
	out    model.Variants
	err    error
	called bool
	ref    model.AssetRef
	meta   model.Metadata
}

func (m *mockDeriver) GenerateDerivatives(ctx context.Context, ref model.AssetRef, meta model.Metadata) (model.Variants, error) {
	m.called = true
	m.ref = ref
	m.meta = meta
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}

// mockCache implements port.Cache and records deletions.
type mockCache struct {
	deleteErr     error
	deleteEtagErr error
	deletedRefs   []model.AssetRef
	deletedEtags  []model.AssetRef
}

func (m *mockCache) GetAssetDetails(ctx context.Context, ref model.AssetRef) ([]byte, error) {
	return nil, nil
}

func (m *mockCache) GetEtagAssetDetails(ctx context.Context, ref model.AssetRef) (string, error) {
	return "", nil
}

func (m *mockCache) SetAssetDetails(ctx context.Context, ref model.AssetRef, data []byte, validUntil time.Time) {
}

func (m *mockCache) SetEtagAssetDetails(ctx context.Context, ref model.AssetRef, etag string, validUntil time.Time) {
}

func (m *mockCache) DeleteAssetDetails(ctx context.Context, ref model.AssetRef) error {
	m.deletedRefs = append(m.deletedRefs, ref)
	return m.deleteErr
}

func (m *mockCache) DeleteEtagAssetDetails(ctx context.Context, ref model.AssetRef) error {
	m.deletedEtags = append(m.deletedEtags, ref)
	return m.deleteEtagErr
}

// mockUploader and mockDeleter let the replace tests drive the composed
// services directly.
type mockUploader struct {
	out    *port.AssetDescriptor
	err    error
	called bool
	in     port.UploadAssetInput
}

func (m *mockUploader) UploadAsset(ctx context.Context, in port.UploadAssetInput) (*port.AssetDescriptor, error) {
	m.called = true
	m.in = in
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}

type mockDeleter struct {
	err     error
	deleted []model.AssetRef
}

func (m *mockDeleter) DeleteAsset(ctx context.Context, ref model.AssetRef) error {
	m.deleted = append(m.deleted, ref)
	return m.err
}

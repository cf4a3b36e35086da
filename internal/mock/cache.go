package mock

import (
	"context"
	"time"

	"github.com/mbeaumont/assets-ms-go/internal/model"
)

// Cache implements the cache port for tests.
type Cache struct {
	Details map[string][]byte
	Etags   map[string]string

	GetErr     error
	GetEtagErr error
	DeleteErr  error

	SetCalled     bool
	SetEtagCalled bool
	DeleteCalled  bool
}

func (m *Cache) ensure() {
	if m.Details == nil {
		m.Details = map[string][]byte{}
	}
	if m.Etags == nil {
		m.Etags = map[string]string{}
	}
}

func (m *Cache) GetAssetDetails(ctx context.Context, ref model.AssetRef) ([]byte, error) {
	m.ensure()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Details[ref.String()], nil
}

func (m *Cache) GetEtagAssetDetails(ctx context.Context, ref model.AssetRef) (string, error) {
	m.ensure()
	if m.GetEtagErr != nil {
		return "", m.GetEtagErr
	}
	return m.Etags[ref.String()], nil
}

func (m *Cache) SetAssetDetails(ctx context.Context, ref model.AssetRef, data []byte, validUntil time.Time) {
	m.ensure()
	m.SetCalled = true
	m.Details[ref.String()] = data
}

func (m *Cache) SetEtagAssetDetails(ctx context.Context, ref model.AssetRef, etag string, validUntil time.Time) {
	m.ensure()
	m.SetEtagCalled = true
	m.Etags[ref.String()] = etag
}

func (m *Cache) DeleteAssetDetails(ctx context.Context, ref model.AssetRef) error {
	m.ensure()
	m.DeleteCalled = true
	delete(m.Details, ref.String())
	return m.DeleteErr
}

func (m *Cache) DeleteEtagAssetDetails(ctx context.Context, ref model.AssetRef) error {
	m.ensure()
	delete(m.Etags, ref.String())
	return m.DeleteErr
}

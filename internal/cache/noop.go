package cache

import (
	"context"
	"time"

	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetAssetDetails(ctx context.Context, ref model.AssetRef) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagAssetDetails(ctx context.Context, ref model.AssetRef) (string, error) {
	return "", nil
}

func (n *NoopCache) SetAssetDetails(ctx context.Context, ref model.AssetRef, data []byte, validUntil time.Time) {
}

func (n *NoopCache) SetEtagAssetDetails(ctx context.Context, ref model.AssetRef, etag string, validUntil time.Time) {
}

func (n *NoopCache) DeleteAssetDetails(ctx context.Context, ref model.AssetRef) error { return nil }

func (n *NoopCache) DeleteEtagAssetDetails(ctx context.Context, ref model.AssetRef) error {
	return nil
}

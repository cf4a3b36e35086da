package port

import (
	"context"
	"time"

	"github.com/mbeaumont/assets-ms-go/internal/model"
)

// Cache provides caching capabilities for asset descriptor retrieval.
type Cache interface {
	GetAssetDetails(ctx context.Context, ref model.AssetRef) ([]byte, error)
	GetEtagAssetDetails(ctx context.Context, ref model.AssetRef) (string, error)
	SetAssetDetails(ctx context.Context, ref model.AssetRef, data []byte, validUntil time.Time)
	SetEtagAssetDetails(ctx context.Context, ref model.AssetRef, etag string, validUntil time.Time)
	DeleteAssetDetails(ctx context.Context, ref model.AssetRef) error
	DeleteEtagAssetDetails(ctx context.Context, ref model.AssetRef) error
}

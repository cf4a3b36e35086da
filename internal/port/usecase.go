package port

import (
	"context"
	"io"
	"time"

	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// AssetDescriptor is the value returned for every committed asset. It is
// never partially populated: either the full file-set exists and all URLs
// resolve, or the operation failed.
type AssetDescriptor struct {
	ID             model.AssetRef `json:"id"`
	URL            string         `json:"url"`
	ThumbnailURL   string         `json:"thumbnail_url"`
	ResponsiveURLs map[int]string `json:"responsive_urls"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	Format         string         `json:"format"`
	SizeBytes      int64          `json:"size_bytes"`
}

// AssetUploader validates an upload, stores the original and generates the
// full derivative set, rolling everything back on any failure.
type AssetUploader interface {
	UploadAsset(ctx context.Context, in UploadAssetInput) (*AssetDescriptor, error)
}
type UploadAssetInput struct {
	Category string
	// FileName is the client's original name, informational only; it never
	// contributes to path construction.
	FileName string
	MimeType string
	Reader   io.Reader
}

// AssetReplacer uploads a new asset and, only once it is committed, deletes
// the superseded identifier's file-set.
type AssetReplacer interface {
	ReplaceAsset(ctx context.Context, in ReplaceAssetInput) (*AssetDescriptor, error)
}
type ReplaceAssetInput struct {
	OldRef model.AssetRef
	Upload UploadAssetInput
}

// AssetDeleter removes an identifier's original plus every derivative.
// Already-missing files are a no-op, so the operation is idempotent.
type AssetDeleter interface {
	DeleteAsset(ctx context.Context, ref model.AssetRef) error
}

// AssetGetter rebuilds the descriptor for an existing asset from the stored
// bytes and the derivative files actually present.
type AssetGetter interface {
	GetAsset(ctx context.Context, ref model.AssetRef) (*GetAssetOutput, error)
}
type GetAssetOutput struct {
	ValidUntil time.Time       `json:"valid_until"`
	Descriptor AssetDescriptor `json:"descriptor"`
}

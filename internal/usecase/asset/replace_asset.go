package asset

import (
	"context"

	"github.com/mbeaumont/assets-ms-go/internal/logger"
	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
)

type replaceAssetSrv struct {
	uploader port.AssetUploader
	deleter  port.AssetDeleter
	strg     port.Storage
	resolver *storagepath.Resolver
}

// compile-time check: *replaceAssetSrv must satisfy port.AssetReplacer
var _ port.AssetReplacer = (*replaceAssetSrv)(nil)

// NewAssetReplacer constructs an AssetReplacer implementation on top of the
// uploader and deleter services.
func NewAssetReplacer(uploader port.AssetUploader, deleter port.AssetDeleter, strg port.Storage, resolver *storagepath.Resolver) port.AssetReplacer {
	return &replaceAssetSrv{uploader: uploader, deleter: deleter, strg: strg, resolver: resolver}
}

// ReplaceAsset commits the new upload first and only then deletes the
// superseded identifier's file-set. A failed upload therefore leaves the
// previous asset fully intact, and a replace pointing at a missing old
// asset degrades to a plain create with a warning.
func (s *replaceAssetSrv) ReplaceAsset(ctx context.Context, in port.ReplaceAssetInput) (*port.AssetDescriptor, error) {
	oldExists := false
	if !in.OldRef.IsZero() {
		if target, err := s.resolver.Original(in.OldRef); err == nil {
			oldExists, _ = s.strg.FileExists(ctx, target.FileKey)
		}
	}
	if !oldExists {
		logger.Warnf(ctx, "replace target %q does not exist, degrading to plain create", in.OldRef)
	}

	desc, err := s.uploader.UploadAsset(ctx, in.Upload)
	if err != nil {
		return nil, err
	}

	if oldExists {
		if err := s.deleter.DeleteAsset(ctx, in.OldRef); err != nil {
			// The new asset is committed; a stuck old file-set must not fail
			// the operation or the caller would drop a valid descriptor.
			logger.Warnf(ctx, "failed to delete superseded asset %q: %v", in.OldRef, err)
		}
	}

	return desc, nil
}

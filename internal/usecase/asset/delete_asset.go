package asset

import (
	"context"
	"errors"

	"github.com/mbeaumont/assets-ms-go/internal/logger"
	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
)

type deleteAssetSrv struct {
	strg     port.Storage
	cache    port.Cache
	resolver *storagepath.Resolver
	widths   []int
}

// compile-time check: *deleteAssetSrv must satisfy port.AssetDeleter
var _ port.AssetDeleter = (*deleteAssetSrv)(nil)

// NewAssetDeleter constructs an AssetDeleter implementation.
func NewAssetDeleter(strg port.Storage, cache port.Cache, resolver *storagepath.Resolver, widths []int) port.AssetDeleter {
	return &deleteAssetSrv{strg: strg, cache: cache, resolver: resolver, widths: widths}
}

// DeleteAsset removes the original plus every derivative the naming scheme
// can address for this identifier. Already-missing files are treated as
// deleted, so a second call on the same identifier is a no-op success.
func (s *deleteAssetSrv) DeleteAsset(ctx context.Context, ref model.AssetRef) error {
	targets, err := s.resolver.FileSet(ref, s.widths)
	if err != nil {
		return err
	}
	if err := removeFileSet(ctx, s.strg, targets); err != nil {
		return err
	}

	if err := s.cache.DeleteAssetDetails(ctx, ref); err != nil {
		logger.Warnf(ctx, "failed deleting cache for asset %q: %v", ref, err)
	}
	if err := s.cache.DeleteEtagAssetDetails(ctx, ref); err != nil {
		logger.Warnf(ctx, "failed deleting etag cache for asset %q: %v", ref, err)
	}

	logger.Infof(ctx, "deleted asset %q (%d addressable files)", ref, len(targets))
	return nil
}

// removeFileSet removes every target, tolerating ones that are already
// gone. It keeps going past failures so one stuck file does not shield the
// rest of the set, and reports the first real failure.
func removeFileSet(ctx context.Context, strg port.Storage, targets []storagepath.Target) error {
	var firstErr error
	for _, t := range targets {
		err := strg.RemoveFile(ctx, t.FileKey)
		if err == nil || errors.Is(err, ErrObjectNotFound) {
			continue
		}
		logger.Errorf(ctx, "failed to remove %q: %v", t.FileKey, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

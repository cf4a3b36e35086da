package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
)

type getAssetSrv struct {
	strg     port.Storage
	resolver *storagepath.Resolver
	widths   []int
	ttl      time.Duration
}

// compile-time check: *getAssetSrv must satisfy port.AssetGetter
var _ port.AssetGetter = (*getAssetSrv)(nil)

// NewAssetGetter constructs an AssetGetter implementation. ttl bounds how
// long a rendered descriptor may be cached.
func NewAssetGetter(strg port.Storage, resolver *storagepath.Resolver, widths []int, ttl time.Duration) port.AssetGetter {
	return &getAssetSrv{strg: strg, resolver: resolver, widths: widths, ttl: ttl}
}

// GetAsset rebuilds the descriptor for an existing identifier. Metadata
// comes from the stored bytes, and only derivative files actually present
// are reported, so the answer reflects the filesystem rather than any
// recorded state.
func (s *getAssetSrv) GetAsset(ctx context.Context, ref model.AssetRef) (*port.GetAssetOutput, error) {
	original, err := s.resolver.Original(ref)
	if err != nil {
		return nil, err
	}

	meta, err := readBackMetadata(ctx, s.strg, original.FileKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("reading asset %q: %w", ref, err)
	}

	thumb, err := s.resolver.Thumbnail(ref)
	if err != nil {
		return nil, err
	}

	responsive := make(map[int]string)
	for _, w := range s.widths {
		target, err := s.resolver.Responsive(ref, w)
		if err != nil {
			return nil, err
		}
		exists, err := s.strg.FileExists(ctx, target.FileKey)
		if err != nil {
			return nil, err
		}
		if exists {
			responsive[w] = target.URL
		}
	}

	return &port.GetAssetOutput{
		ValidUntil: time.Now().Add(s.ttl),
		Descriptor: port.AssetDescriptor{
			ID:             ref,
			URL:            original.URL,
			ThumbnailURL:   thumb.URL,
			ResponsiveURLs: responsive,
			Width:          meta.Width,
			Height:         meta.Height,
			Format:         meta.Format,
			SizeBytes:      meta.SizeBytes,
		},
	}, nil
}

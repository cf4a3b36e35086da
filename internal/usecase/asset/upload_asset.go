package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strconv"

	_ "golang.org/x/image/webp"

	"github.com/mbeaumont/assets-ms-go/internal/logger"
	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
)

type uploaderSrv struct {
	strg     port.Storage
	deriver  port.Deriver
	resolver *storagepath.Resolver
	genUUID  port.UUIDGen
	limits   SizeLimits
	widths   []int
}

// compile-time check: *uploaderSrv must satisfy port.AssetUploader
var _ port.AssetUploader = (*uploaderSrv)(nil)

// NewAssetUploader constructs an AssetUploader implementation. widths must
// match the deriver's responsive width list so rollback enumerates the same
// file-set the deriver writes.
func NewAssetUploader(strg port.Storage, deriver port.Deriver, resolver *storagepath.Resolver, genUUID port.UUIDGen, limits SizeLimits, widths []int) port.AssetUploader {
	return &uploaderSrv{strg: strg, deriver: deriver, resolver: resolver, genUUID: genUUID, limits: limits, widths: widths}
}

// UploadAsset runs one create operation end to end: validate, name, write
// the original, read its metadata back from the stored bytes, derive every
// rendition, and return the descriptor. Any failure past the validation
// gate deletes everything written for the new identifier before the error
// is surfaced, so no orphan bytes remain.
func (s *uploaderSrv) UploadAsset(ctx context.Context, in port.UploadAssetInput) (*port.AssetDescriptor, error) {
	if err := storagepath.ValidateCategory(in.Category); err != nil {
		return nil, err
	}
	if !IsMimeTypeAllowed(in.MimeType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMediaType, in.MimeType)
	}

	limit := s.limits.For(in.Category)
	data, err := io.ReadAll(io.LimitReader(in.Reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes (limit for %q)", ErrPayloadTooLarge, limit, in.Category)
	}

	// The declared type is only trusted once the payload decodes to the
	// same format; empty or mislabelled payloads fail here, before any IO.
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not a decodable image: %v", ErrInvalidMediaType, err)
	}
	if FormatToMimeType(format) != in.MimeType {
		return nil, fmt.Errorf("%w: declared %q but payload is %q", ErrInvalidMediaType, in.MimeType, format)
	}

	ext, err := MimeTypeToExtension(in.MimeType)
	if err != nil {
		return nil, err
	}
	ref := model.AssetRef{Category: in.Category, Name: s.genUUID().String(), Ext: ext}

	original, err := s.resolver.Original(ref)
	if err != nil {
		return nil, err
	}

	if err := s.strg.InitCategory(ref.Category); err != nil {
		return nil, fmt.Errorf("%w: init category %q: %v", ErrStorageWriteFailed, ref.Category, err)
	}
	if err := s.strg.SaveFile(ctx, original.FileKey, bytes.NewReader(data), int64(len(data)), map[string]string{"Content-Type": in.MimeType}); err != nil {
		s.rollback(ctx, ref)
		return nil, fmt.Errorf("%w: original %q: %v", ErrStorageWriteFailed, original.FileKey, err)
	}

	meta, err := readBackMetadata(ctx, s.strg, original.FileKey)
	if err != nil {
		s.rollback(ctx, ref)
		return nil, fmt.Errorf("%w: read back %q: %v", ErrStorageWriteFailed, original.FileKey, err)
	}

	variants, err := s.deriver.GenerateDerivatives(ctx, ref, meta)
	if err != nil {
		s.rollback(ctx, ref)
		return nil, fmt.Errorf("%w: %v", ErrDerivativeGeneration, err)
	}

	desc, err := buildDescriptor(s.resolver, ref, meta, variants)
	if err != nil {
		s.rollback(ctx, ref)
		return nil, err
	}

	logger.Infof(ctx, "committed asset %q (%dx%d %s, %d bytes, %d derivatives)",
		ref, meta.Width, meta.Height, meta.Format, meta.SizeBytes, len(variants))
	return desc, nil
}

// rollback removes everything the in-progress identifier may have written.
// Failures are logged, not returned: a secondary cleanup error must not
// mask the primary cause.
func (s *uploaderSrv) rollback(ctx context.Context, ref model.AssetRef) {
	targets, err := s.resolver.FileSet(ref, s.widths)
	if err != nil {
		logger.Errorf(ctx, "rollback of %q could not resolve file-set: %v", ref, err)
		return
	}
	if err := removeFileSet(ctx, s.strg, targets); err != nil {
		logger.Errorf(ctx, "rollback of %q left files behind: %v", ref, err)
	}
}

// readBackMetadata derives width/height/format/size from the stored bytes,
// never from caller-declared values.
func readBackMetadata(ctx context.Context, strg port.Storage, fileKey string) (model.Metadata, error) {
	rc, err := strg.GetFile(ctx, fileKey)
	if err != nil {
		return model.Metadata{}, err
	}
	defer func() { _ = rc.Close() }()

	cfg, format, err := image.DecodeConfig(rc)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("decode stored image: %w", err)
	}
	info, err := strg.StatFile(ctx, fileKey)
	if err != nil {
		return model.Metadata{}, err
	}
	return model.Metadata{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: info.SizeBytes,
	}, nil
}

// buildDescriptor resolves every URL for a committed asset from the same
// resolver that placed the files.
func buildDescriptor(resolver *storagepath.Resolver, ref model.AssetRef, meta model.Metadata, variants model.Variants) (*port.AssetDescriptor, error) {
	original, err := resolver.Original(ref)
	if err != nil {
		return nil, err
	}
	thumb, err := resolver.Thumbnail(ref)
	if err != nil {
		return nil, err
	}

	responsive := make(map[int]string)
	for _, v := range variants {
		if v.Tag == model.VariantTagThumb {
			continue
		}
		w, err := strconv.Atoi(v.Tag)
		if err != nil {
			return nil, fmt.Errorf("variant tag %q is not a width", v.Tag)
		}
		target, err := resolver.Responsive(ref, w)
		if err != nil {
			return nil, err
		}
		responsive[w] = target.URL
	}

	return &port.AssetDescriptor{
		ID:             ref,
		URL:            original.URL,
		ThumbnailURL:   thumb.URL,
		ResponsiveURLs: responsive,
		Width:          meta.Width,
		Height:         meta.Height,
		Format:         meta.Format,
		SizeBytes:      meta.SizeBytes,
	}, nil
}

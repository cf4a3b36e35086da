package deriver

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
)

const (
	// ThumbSize is the fixed square edge of the thumbnail derivative.
	ThumbSize = 150

	jpegQuality = 85
	webpQuality = 80
)

// DefaultWidths is the fixed responsive width list used when none is
// configured.
var DefaultWidths = []int{320, 640, 768, 1024, 1200}

// Deriver generates the derivative set for a stored original: one
// ThumbSize×ThumbSize cover-cropped thumbnail plus one aspect-preserving
// rendition per configured width. A width at or above the original's is
// skipped rather than upscaled; the original already serves that
// breakpoint.
type Deriver struct {
	strg     port.Storage
	resolver *storagepath.Resolver
	webpEnc  WebPEncoder
	widths   []int
}

// compile-time check: *Deriver must satisfy port.Deriver
var _ port.Deriver = (*Deriver)(nil)

// NewDeriver constructs a Deriver writing through strg at the locations
// resolver computes.
func NewDeriver(strg port.Storage, resolver *storagepath.Resolver, webpEnc WebPEncoder, widths []int) *Deriver {
	if len(widths) == 0 {
		widths = DefaultWidths
	}
	return &Deriver{strg: strg, resolver: resolver, webpEnc: webpEnc, widths: widths}
}

// Widths returns the configured responsive width list.
func (d *Deriver) Widths() []int {
	return d.widths
}

type job struct {
	tag    string
	target storagepath.Target
	render func(src image.Image) *image.NRGBA
}

// GenerateDerivatives decodes the stored original once and renders every
// derivative concurrently; the renditions read the same immutable image and
// write disjoint keys. It returns only after every rendition has finished,
// and returns the first error if any of them failed. Files written before a
// failure are left for the caller to roll back.
func (d *Deriver) GenerateDerivatives(ctx context.Context, ref model.AssetRef, meta model.Metadata) (model.Variants, error) {
	original, err := d.resolver.Original(ref)
	if err != nil {
		return nil, err
	}
	rc, err := d.strg.GetFile(ctx, original.FileKey)
	if err != nil {
		return nil, fmt.Errorf("read original %q: %w", original.FileKey, err)
	}
	defer func() { _ = rc.Close() }()

	src, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode original %q: %w", original.FileKey, err)
	}

	jobs, err := d.plan(ref, meta)
	if err != nil {
		return nil, err
	}

	variants := make(model.Variants, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			v, err := d.renderOne(gctx, j, src)
			if err != nil {
				return err
			}
			variants[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return variants, nil
}

func (d *Deriver) plan(ref model.AssetRef, meta model.Metadata) ([]job, error) {
	thumb, err := d.resolver.Thumbnail(ref)
	if err != nil {
		return nil, err
	}
	jobs := []job{{
		tag:    model.VariantTagThumb,
		target: thumb,
		render: func(src image.Image) *image.NRGBA {
			return imaging.Fill(src, ThumbSize, ThumbSize, imaging.Center, imaging.Lanczos)
		},
	}}

	for _, w := range d.widths {
		w := w
		if w <= 0 || w >= meta.Width {
			continue
		}
		target, err := d.resolver.Responsive(ref, w)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job{
			tag:    fmt.Sprintf("%d", w),
			target: target,
			render: func(src image.Image) *image.NRGBA {
				return imaging.Resize(src, w, 0, imaging.Lanczos)
			},
		})
	}
	return jobs, nil
}

func (d *Deriver) renderOne(ctx context.Context, j job, src image.Image) (model.Variant, error) {
	if err := ctx.Err(); err != nil {
		return model.Variant{}, err
	}

	resized := j.render(src)

	buf := &bytes.Buffer{}
	if err := d.encode(buf, resized, extFormat(j.target.FileKey)); err != nil {
		return model.Variant{}, fmt.Errorf("encode variant %q: %w", j.target.FileKey, err)
	}

	size := int64(buf.Len())
	if err := d.strg.SaveFile(ctx, j.target.FileKey, buf, size, nil); err != nil {
		return model.Variant{}, fmt.Errorf("save variant %q: %w", j.target.FileKey, err)
	}

	bounds := resized.Bounds()
	return model.Variant{
		Tag:       j.tag,
		FileKey:   j.target.FileKey,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		SizeBytes: size,
	}, nil
}

// encode writes img in the original's format so a derivative always carries
// the same extension as its parent.
func (d *Deriver) encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case "png":
		return imaging.Encode(w, img, imaging.PNG)
	case "gif":
		return imaging.Encode(w, img, imaging.GIF)
	case "webp":
		return d.webpEnc.Encode(w, img, webpQuality)
	default:
		return fmt.Errorf("no encoder for format %q", format)
	}
}

func extFormat(fileKey string) string {
	for i := len(fileKey) - 1; i >= 0; i-- {
		if fileKey[i] == '.' {
			switch ext := fileKey[i+1:]; ext {
			case "jpg", "jpeg":
				return "jpeg"
			default:
				return ext
			}
		}
	}
	return ""
}

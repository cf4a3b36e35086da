package deriver

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

// WebPEncoder abstracts the cgo-backed webp encoder so tests can swap it
// out and inject failures.
type WebPEncoder interface {
	Encode(w io.Writer, img image.Image, quality float32) error
}

type chaiWebPEncoder struct{}

func (chaiWebPEncoder) Encode(w io.Writer, img image.Image, quality float32) error {
	return webp.Encode(w, img, &webp.Options{Quality: quality})
}

// NewWebPEncoder returns the default chai2010-backed encoder.
func NewWebPEncoder() WebPEncoder {
	return chaiWebPEncoder{}
}

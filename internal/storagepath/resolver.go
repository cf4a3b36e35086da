package storagepath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mbeaumont/assets-ms-go/internal/model"
)

// ErrInvalidCategory is returned for category values that could escape the
// upload root or otherwise break the on-disk layout.
var ErrInvalidCategory = errors.New("storagepath: invalid category")

var (
	categoryRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	extRe      = regexp.MustCompile(`^[a-z0-9]{1,5}$`)
)

// Target is one resolved location: the storage file key (relative to the
// upload root) and the public URL that mirrors it 1:1.
type Target struct {
	FileKey string
	URL     string
}

// Resolver is the only place the physical naming convention lives:
//
//	<category>/<name>.<ext>          original
//	<category>/<name>_thumb.<ext>    thumbnail
//	<category>/<name>_<width>.<ext>  responsive variant
//
// Every component that creates, reads or deletes files goes through it, so
// the three operations can never disagree on the layout. It never touches
// disk.
type Resolver struct {
	baseURL string
}

// NewResolver builds a resolver whose URLs live under baseURL.
func NewResolver(baseURL string) (*Resolver, error) {
	trimmed := strings.TrimRight(baseURL, "/")
	if trimmed == "" {
		return nil, errors.New("storagepath: base URL is required")
	}
	return &Resolver{baseURL: trimmed}, nil
}

// ValidateCategory rejects category values containing traversal sequences,
// separators or anything else outside the [a-z0-9_-] namespace.
func ValidateCategory(category string) error {
	if !categoryRe.MatchString(category) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}

func (r *Resolver) validateRef(ref model.AssetRef) error {
	if err := ValidateCategory(ref.Category); err != nil {
		return err
	}
	if !nameRe.MatchString(ref.Name) {
		return fmt.Errorf("%w: name %q", ErrInvalidCategory, ref.Name)
	}
	if !extRe.MatchString(ref.Ext) {
		return fmt.Errorf("%w: extension %q", ErrInvalidCategory, ref.Ext)
	}
	return nil
}

func (r *Resolver) target(ref model.AssetRef, suffix string) Target {
	fileKey := ref.Category + "/" + ref.Name + suffix + "." + ref.Ext
	return Target{FileKey: fileKey, URL: r.baseURL + "/" + fileKey}
}

// Original resolves the location of the uploaded bytes themselves.
func (r *Resolver) Original(ref model.AssetRef) (Target, error) {
	if err := r.validateRef(ref); err != nil {
		return Target{}, err
	}
	return r.target(ref, ""), nil
}

// Thumbnail resolves the fixed-square thumbnail derivative.
func (r *Resolver) Thumbnail(ref model.AssetRef) (Target, error) {
	if err := r.validateRef(ref); err != nil {
		return Target{}, err
	}
	return r.target(ref, "_"+model.VariantTagThumb), nil
}

// Responsive resolves the derivative for one responsive width.
func (r *Resolver) Responsive(ref model.AssetRef, width int) (Target, error) {
	if err := r.validateRef(ref); err != nil {
		return Target{}, err
	}
	if width <= 0 {
		return Target{}, fmt.Errorf("storagepath: width %d is not positive", width)
	}
	return r.target(ref, fmt.Sprintf("_%d", width)), nil
}

// FileSet enumerates every location an identifier can address: the original,
// the thumbnail and one target per configured width. Delete and rollback
// iterate over exactly this list, so nothing an upload may have written can
// outlive its original.
func (r *Resolver) FileSet(ref model.AssetRef, widths []int) ([]Target, error) {
	if err := r.validateRef(ref); err != nil {
		return nil, err
	}
	targets := make([]Target, 0, len(widths)+2)
	targets = append(targets, r.target(ref, ""), r.target(ref, "_"+model.VariantTagThumb))
	for _, w := range widths {
		if w <= 0 {
			continue
		}
		targets = append(targets, r.target(ref, fmt.Sprintf("_%d", w)))
	}
	return targets, nil
}

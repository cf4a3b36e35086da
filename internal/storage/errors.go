package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/mbeaumont/assets-ms-go/internal/usecase/asset"
)

func mapFsErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return asset.ErrObjectNotFound
	case errors.Is(err, fs.ErrPermission):
		return asset.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", asset.ErrInternal, err)
	}
}

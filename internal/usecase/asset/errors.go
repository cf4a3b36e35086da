package asset

import "errors"

// Classified errors surfaced to callers. Validation errors are returned
// before any storage I/O; the mid-pipeline ones are returned only after the
// in-progress identifier's files have been rolled back.
var (
	ErrInvalidMediaType     = errors.New("asset: media type not allowed")
	ErrPayloadTooLarge      = errors.New("asset: payload exceeds size limit")
	ErrStorageWriteFailed   = errors.New("asset: storage write failed")
	ErrDerivativeGeneration = errors.New("asset: derivative generation failed")
	ErrAssetNotFound        = errors.New("asset: not found")
)

// Storage-level errors, mapped from the adapter's underlying failures.
var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

package api

import (
	"context"

	"github.com/mbeaumont/assets-ms-go/internal/api_context"
	"github.com/mbeaumont/assets-ms-go/internal/model"
)

// RefKey re-exports the context key so handler tests and middleware agree
// on where the parsed asset ref lives.
const RefKey = api_context.RefKey

func RefFromContext(ctx context.Context) (model.AssetRef, bool) {
	return api_context.RefFromContext(ctx)
}

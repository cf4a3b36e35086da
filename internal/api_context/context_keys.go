package api_context

import (
	"context"

	"github.com/mbeaumont/assets-ms-go/internal/model"
)

type ctxKey string

const (
	RefKey      ctxKey = "assetRef"
	CategoryKey ctxKey = "category"
)

func RefFromContext(ctx context.Context) (model.AssetRef, bool) {
	ref, ok := ctx.Value(RefKey).(model.AssetRef)
	return ref, ok
}

func CategoryFromContext(ctx context.Context) (string, bool) {
	category, ok := ctx.Value(CategoryKey).(string)
	return category, ok
}

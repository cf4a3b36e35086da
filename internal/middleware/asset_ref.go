package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbeaumont/assets-ms-go/internal/api_context"
	"github.com/mbeaumont/assets-ms-go/internal/handler/api"
	"github.com/mbeaumont/assets-ms-go/internal/model"
)

// WithAssetRef parses the {category}/{file} URL params into an AssetRef and
// stashes it in the request context.
func WithAssetRef() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			category := chi.URLParam(r, "category")
			file := chi.URLParam(r, "file")
			if category == "" || file == "" {
				api.WriteError(w, http.StatusBadRequest, "Asset identifier is required", nil)
				return
			}
			ref, err := model.ParseAssetRef(category + "/" + file)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("%q is not a valid asset identifier", category+"/"+file), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.RefKey, ref)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

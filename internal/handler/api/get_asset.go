package api

import (
	"log"
	"net/http"

	"github.com/mbeaumont/assets-ms-go/internal/port"
)

func GetAssetHandler(renderer port.HTTPRenderer, svc port.AssetGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := RefFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "Asset identifier is required", nil)
			return
		}

		raw, etag, err := renderer.RenderGetAsset(r.Context(), svc, ref)
		if err != nil {
			writeAssetError(w, err, "Could not get asset details")
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			log.Printf("✅  Returning cached asset %q", ref)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		log.Printf("✅  Successfully returned details for asset %q", ref)
	}
}

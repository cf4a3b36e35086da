package api

import (
	"log"
	"net/http"

	"github.com/mbeaumont/assets-ms-go/internal/port"
)

// DeleteAssetHandler deletes an asset's full file-set by identifier.
// Deleting an already-deleted identifier succeeds: the observable end state
// is the same.
func DeleteAssetHandler(svc port.AssetDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref, ok := RefFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "Asset identifier is required", nil)
			return
		}

		if err := svc.DeleteAsset(r.Context(), ref); err != nil {
			writeAssetError(w, err, "Failed to delete asset")
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted asset %q", ref)
	}
}

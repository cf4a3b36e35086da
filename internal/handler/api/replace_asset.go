package api

import (
	"log"
	"net/http"

	"github.com/mbeaumont/assets-ms-go/internal/port"
)

// ReplaceAssetHandler uploads a new asset for the category of the
// identifier in the URL and deletes the old file-set once the new asset is
// committed.
func ReplaceAssetHandler(svc port.AssetReplacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oldRef, ok := RefFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "Asset identifier is required", nil)
			return
		}

		in, file, ok := parseUploadRequest(w, r)
		if !ok {
			return
		}
		defer func() { _ = file.Close() }()

		in.Reader = file
		desc, err := svc.ReplaceAsset(r.Context(), port.ReplaceAssetInput{OldRef: oldRef, Upload: in})
		if err != nil {
			writeAssetError(w, err, "Failed to replace asset")
			return
		}

		RespondJSON(w, http.StatusOK, desc)
		log.Printf("✅  Successfully replaced asset %q with %q", oldRef, desc.ID)
	}
}

package api

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/storagepath"
	"github.com/mbeaumont/assets-ms-go/internal/usecase/asset"
	"github.com/mbeaumont/assets-ms-go/internal/validation"
)

type uploadRequest struct {
	Category string `json:"category" validate:"required"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type" validate:"required"`
}

// maxMultipartMemory bounds how much of the multipart body is buffered in
// memory before spilling to temp files.
const maxMultipartMemory = 32 << 20

// UploadAssetHandler accepts a multipart upload under the {category} URL
// param and returns the committed asset's descriptor.
func UploadAssetHandler(svc port.AssetUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, file, ok := parseUploadRequest(w, r)
		if !ok {
			return
		}
		defer func() { _ = file.Close() }()

		in.Reader = file
		desc, err := svc.UploadAsset(r.Context(), in)
		if err != nil {
			writeAssetError(w, err, "Failed to upload asset")
			return
		}

		RespondJSON(w, http.StatusCreated, desc)
		log.Printf("✅  Successfully uploaded asset %q", desc.ID)
	}
}

// parseUploadRequest extracts and validates the category, declared media
// type and file part shared by the upload and replace endpoints.
func parseUploadRequest(w http.ResponseWriter, r *http.Request) (port.UploadAssetInput, multipart.File, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteError(w, http.StatusBadRequest, "Could not parse multipart form", err)
		return port.UploadAssetInput{}, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "A \"file\" form field is required", err)
		return port.UploadAssetInput{}, nil, false
	}

	req := uploadRequest{
		Category: chi.URLParam(r, "category"),
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}
	if err := validation.ValidateStruct(req); err != nil {
		_ = file.Close()
		details, jsonErr := validation.ErrorsToJson(err)
		if jsonErr != nil {
			details = err.Error()
		}
		WriteError(w, http.StatusBadRequest, "Invalid upload request: "+details, nil)
		return port.UploadAssetInput{}, nil, false
	}

	return port.UploadAssetInput{
		Category: req.Category,
		FileName: req.FileName,
		MimeType: req.MimeType,
	}, file, true
}

// writeAssetError maps the lifecycle manager's classified errors onto HTTP
// statuses.
func writeAssetError(w http.ResponseWriter, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, asset.ErrInvalidMediaType):
		WriteError(w, http.StatusUnsupportedMediaType, "Media type not allowed", err)
	case errors.Is(err, asset.ErrPayloadTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, "Payload exceeds the size limit", err)
	case errors.Is(err, asset.ErrAssetNotFound):
		WriteError(w, http.StatusNotFound, "Asset not found", err)
	case errors.Is(err, storagepath.ErrInvalidCategory):
		WriteError(w, http.StatusBadRequest, "Invalid category", err)
	default:
		WriteError(w, http.StatusInternalServerError, fallbackMsg, err)
	}
}

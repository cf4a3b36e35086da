package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbeaumont/assets-ms-go/internal/mock"
	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
	"github.com/mbeaumont/assets-ms-go/internal/usecase/asset"
)

func TestReplaceAssetHandler(t *testing.T) {
	oldRef := model.AssetRef{Category: "services", Name: "old", Ext: "png"}
	newRef := model.AssetRef{Category: "services", Name: "new", Ext: "png"}
	svc := &mock.MockAssetReplacer{Out: &port.AssetDescriptor{ID: newRef}}

	body, contentType := multipartBody(t, "photo.png", "image/png", []byte("fake png bytes"))
	req := httptest.NewRequest(http.MethodPut, "/assets/services/old.png", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"category": "services", "file": "old.png"})
	req = withAssetRef(req, oldRef)

	rr := httptest.NewRecorder()
	ReplaceAssetHandler(svc).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 (body %s)", rr.Code, rr.Body)
	}
	if !svc.Called {
		t.Fatal("use case was not called")
	}
	if svc.In.OldRef != oldRef {
		t.Errorf("old ref = %v; want %v", svc.In.OldRef, oldRef)
	}
	if svc.In.Upload.Category != "services" || svc.In.Upload.MimeType != "image/png" {
		t.Errorf("upload input = %+v; want category and mime from the request", svc.In.Upload)
	}

	var got port.AssetDescriptor
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != newRef {
		t.Errorf("response ID = %v; want %v", got.ID, newRef)
	}
}

func TestReplaceAssetHandler_MissingRef(t *testing.T) {
	svc := &mock.MockAssetReplacer{}

	body, contentType := multipartBody(t, "photo.png", "image/png", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPut, "/assets/services/old.png", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	ReplaceAssetHandler(svc).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rr.Code)
	}
	if svc.Called {
		t.Error("use case was called without a ref")
	}
}

func TestReplaceAssetHandler_UseCaseFailure(t *testing.T) {
	oldRef := model.AssetRef{Category: "services", Name: "old", Ext: "png"}
	svc := &mock.MockAssetReplacer{Err: asset.ErrInvalidMediaType}

	body, contentType := multipartBody(t, "photo.png", "image/png", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPut, "/assets/services/old.png", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"category": "services", "file": "old.png"})
	req = withAssetRef(req, oldRef)

	rr := httptest.NewRecorder()
	ReplaceAssetHandler(svc).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d; want 415", rr.Code)
	}
}

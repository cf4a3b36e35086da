package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbeaumont/assets-ms-go/internal/mock"
	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/usecase/asset"
)

func TestGetAssetHandler(t *testing.T) {
	ref := model.AssetRef{Category: "services", Name: "abc", Ext: "png"}
	renderer := &mock.MockHTTPRenderer{Raw: []byte(`{"id":"services/abc.png"}`), Etag: `"cafebabe"`}
	getter := &mock.MockAssetGetter{}

	req := httptest.NewRequest(http.MethodGet, "/assets/services/abc.png", nil)
	req = withAssetRef(req, ref)

	rr := httptest.NewRecorder()
	GetAssetHandler(renderer, getter).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
	if !renderer.Called || renderer.Ref != ref {
		t.Errorf("renderer called=%v ref=%v; want called with %v", renderer.Called, renderer.Ref, ref)
	}
	if got := rr.Header().Get("ETag"); got != `"cafebabe"` {
		t.Errorf("ETag = %q; want %q", got, `"cafebabe"`)
	}
	if got := rr.Header().Get("Cache-Control"); got == "" {
		t.Error("Cache-Control header is missing")
	}
	if rr.Body.String() != `{"id":"services/abc.png"}` {
		t.Errorf("body = %s; want the rendered payload", rr.Body)
	}
}

func TestGetAssetHandler_NotModified(t *testing.T) {
	ref := model.AssetRef{Category: "services", Name: "abc", Ext: "png"}
	renderer := &mock.MockHTTPRenderer{Raw: []byte(`{}`), Etag: `"cafebabe"`}

	req := httptest.NewRequest(http.MethodGet, "/assets/services/abc.png", nil)
	req.Header.Set("If-None-Match", `"cafebabe"`)
	req = withAssetRef(req, ref)

	rr := httptest.NewRecorder()
	GetAssetHandler(renderer, &mock.MockAssetGetter{}).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotModified {
		t.Fatalf("status = %d; want 304", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("304 response has a body: %q", rr.Body)
	}
	if got := rr.Header().Get("ETag"); got != `"cafebabe"` {
		t.Errorf("ETag = %q; want it set on 304 too", got)
	}
}

func TestGetAssetHandler_StaleEtagGetsFullResponse(t *testing.T) {
	ref := model.AssetRef{Category: "services", Name: "abc", Ext: "png"}
	renderer := &mock.MockHTTPRenderer{Raw: []byte(`{}`), Etag: `"cafebabe"`}

	req := httptest.NewRequest(http.MethodGet, "/assets/services/abc.png", nil)
	req.Header.Set("If-None-Match", `"deadbeef"`)
	req = withAssetRef(req, ref)

	rr := httptest.NewRecorder()
	GetAssetHandler(renderer, &mock.MockAssetGetter{}).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
}

func TestGetAssetHandler_NotFound(t *testing.T) {
	ref := model.AssetRef{Category: "services", Name: "ghost", Ext: "png"}
	renderer := &mock.MockHTTPRenderer{Err: asset.ErrAssetNotFound}

	req := httptest.NewRequest(http.MethodGet, "/assets/services/ghost.png", nil)
	req = withAssetRef(req, ref)

	rr := httptest.NewRecorder()
	GetAssetHandler(renderer, &mock.MockAssetGetter{}).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", rr.Code)
	}
}

func TestGetAssetHandler_MissingRef(t *testing.T) {
	renderer := &mock.MockHTTPRenderer{}

	req := httptest.NewRequest(http.MethodGet, "/assets/services/abc.png", nil)
	rr := httptest.NewRecorder()
	GetAssetHandler(renderer, &mock.MockAssetGetter{}).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rr.Code)
	}
	if renderer.Called {
		t.Error("renderer was called without a ref")
	}
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbeaumont/assets-ms-go/internal/mock"
	"github.com/mbeaumont/assets-ms-go/internal/model"
)

// withAssetRef stashes a parsed ref in the request context the way the
// WithAssetRef middleware does.
func withAssetRef(r *http.Request, ref model.AssetRef) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), RefKey, ref))
}

func TestDeleteAssetHandler(t *testing.T) {
	ref := model.AssetRef{Category: "services", Name: "abc", Ext: "png"}

	tests := []struct {
		name       string
		withRef    bool
		svcErr     error
		wantStatus int
		wantCalled bool
	}{
		{"success", true, nil, http.StatusNoContent, true},
		{"missing ref", false, nil, http.StatusBadRequest, false},
		{"use case failure", true, errors.New("storage down"), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mock.MockAssetDeleter{Err: tt.svcErr}

			req := httptest.NewRequest(http.MethodDelete, "/assets/services/abc.png", nil)
			if tt.withRef {
				req = withAssetRef(req, ref)
			}

			rr := httptest.NewRecorder()
			DeleteAssetHandler(svc).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d; want %d", rr.Code, tt.wantStatus)
			}
			if svc.Called != tt.wantCalled {
				t.Errorf("called = %v; want %v", svc.Called, tt.wantCalled)
			}
			if tt.wantCalled && tt.svcErr == nil {
				if svc.Ref != ref {
					t.Errorf("ref = %v; want %v", svc.Ref, ref)
				}
				if rr.Body.Len() != 0 {
					t.Errorf("204 response has a body: %q", rr.Body)
				}
			}
		})
	}
}

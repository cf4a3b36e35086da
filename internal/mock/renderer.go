package mock

import (
	"context"

	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
)

// MockHTTPRenderer implements port.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Raw    []byte
	Etag   string
	Err    error
	Called bool
	Ref    model.AssetRef
}

func (m *MockHTTPRenderer) RenderGetAsset(ctx context.Context, getter port.AssetGetter, ref model.AssetRef) ([]byte, string, error) {
	m.Called = true
	m.Ref = ref
	if m.Err != nil {
		return nil, "", m.Err
	}
	return m.Raw, m.Etag, nil
}

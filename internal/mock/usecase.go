package mock

import (
	"context"

	"github.com/mbeaumont/assets-ms-go/internal/model"
	"github.com/mbeaumont/assets-ms-go/internal/port"
)

// MockAssetUploader implements port.AssetUploader for tests.
type MockAssetUploader struct {
	Out    *port.AssetDescriptor
	Err    error
	Called bool
	In     port.UploadAssetInput
}

func (m *MockAssetUploader) UploadAsset(ctx context.Context, in port.UploadAssetInput) (*port.AssetDescriptor, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// MockAssetReplacer implements port.AssetReplacer for tests.
type MockAssetReplacer struct {
	Out    *port.AssetDescriptor
	Err    error
	Called bool
	In     port.ReplaceAssetInput
}

func (m *MockAssetReplacer) ReplaceAsset(ctx context.Context, in port.ReplaceAssetInput) (*port.AssetDescriptor, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

// MockAssetDeleter implements port.AssetDeleter for tests.
type MockAssetDeleter struct {
	Err    error
	Called bool
	Ref    model.AssetRef
}

func (m *MockAssetDeleter) DeleteAsset(ctx context.Context, ref model.AssetRef) error {
	m.Called = true
	m.Ref = ref
	return m.Err
}

// MockAssetGetter implements port.AssetGetter for tests.
type MockAssetGetter struct {
	Out    *port.GetAssetOutput
	Err    error
	Called bool
	Ref    model.AssetRef
}

func (m *MockAssetGetter) GetAsset(ctx context.Context, ref model.AssetRef) (*port.GetAssetOutput, error) {
	m.Called = true
	m.Ref = ref
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Out, nil
}

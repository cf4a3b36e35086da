package asset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mbeaumont/assets-ms-go/internal/model"
)

func TestGetAsset(t *testing.T) {
	strg := newMockStorage()
	ref := model.AssetRef{Category: "services", Name: "abc", Ext: "png"}
	strg.files["services/abc.png"] = pngPayload(t, 800, 600)
	strg.files["services/abc_thumb.png"] = []byte("thumb")
	strg.files["services/abc_320.png"] = []byte("320")

	ttl := 5 * time.Minute
	srv := NewAssetGetter(strg, newTestResolver(t), []int{320, 640}, ttl)

	before := time.Now()
	out, err := srv.GetAsset(context.Background(), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	desc := out.Descriptor
	if desc.ID != ref {
		t.Errorf("ID = %v; want %v", desc.ID, ref)
	}
	if desc.Width != 800 || desc.Height != 600 || desc.Format != "png" {
		t.Errorf("metadata = %dx%d %s; want 800x600 png", desc.Width, desc.Height, desc.Format)
	}
	// only the 320 file exists on disk; 640 must not be reported
	if _, ok := desc.ResponsiveURLs[320]; !ok {
		t.Error("existing 320 derivative was not reported")
	}
	if _, ok := desc.ResponsiveURLs[640]; ok {
		t.Error("missing 640 derivative was reported")
	}

	if out.ValidUntil.Before(before.Add(ttl)) || out.ValidUntil.After(time.Now().Add(ttl)) {
		t.Errorf("ValidUntil = %v; want about now+%v", out.ValidUntil, ttl)
	}
}

func TestGetAsset_NotFound(t *testing.T) {
	srv := NewAssetGetter(newMockStorage(), newTestResolver(t), nil, time.Minute)

	_, err := srv.GetAsset(context.Background(), model.AssetRef{Category: "services", Name: "ghost", Ext: "png"})
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("error = %v; want ErrAssetNotFound", err)
	}
}

func TestGetAsset_CorruptStoredOriginal(t *testing.T) {
	strg := newMockStorage()
	ref := model.AssetRef{Category: "services", Name: "bad", Ext: "png"}
	strg.files["services/bad.png"] = []byte("not an image")

	srv := NewAssetGetter(strg, newTestResolver(t), nil, time.Minute)
	_, err := srv.GetAsset(context.Background(), ref)
	if err == nil || errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("error = %v; want a decode failure, not not-found", err)
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/mbeaumont/assets-ms-go/internal/model"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	return NewCache(s.Addr(), ""), s
}

func testRef() model.AssetRef {
	return model.AssetRef{Category: "services", Name: "abc", Ext: "png"}
}

func TestAssetDetailsRoundTrip(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()
	ref := testRef()

	got, err := c.GetAssetDetails(ctx, ref)
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected a miss, got %q", got)
	}

	payload := []byte(`{"url":"https://example.com/uploads/services/abc.png"}`)
	c.SetAssetDetails(ctx, ref, payload, time.Now().Add(5*time.Minute))

	got, err = c.GetAssetDetails(ctx, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("got %q; want %q", got, payload)
	}

	if ttl := s.TTL("asset:" + ref.String()); ttl <= 0 || ttl > 5*time.Minute {
		t.Errorf("TTL = %v; want within (0, 5m]", ttl)
	}
}

func TestEtagAssetDetailsRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	ref := testRef()

	got, err := c.GetEtagAssetDetails(ctx, ref)
	if err != nil {
		t.Fatalf("miss should not error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected a miss, got %q", got)
	}

	c.SetEtagAssetDetails(ctx, ref, `"abcd1234"`, time.Now().Add(time.Minute))

	got, err = c.GetEtagAssetDetails(ctx, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `"abcd1234"` {
		t.Errorf("got %q; want %q", got, `"abcd1234"`)
	}
}

func TestDeleteAssetDetails(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	ref := testRef()

	c.SetAssetDetails(ctx, ref, []byte("data"), time.Now().Add(time.Minute))
	c.SetEtagAssetDetails(ctx, ref, "etag", time.Now().Add(time.Minute))

	if err := c.DeleteAssetDetails(ctx, ref); err != nil {
		t.Fatalf("DeleteAssetDetails: %v", err)
	}
	if err := c.DeleteEtagAssetDetails(ctx, ref); err != nil {
		t.Fatalf("DeleteEtagAssetDetails: %v", err)
	}

	if got, _ := c.GetAssetDetails(ctx, ref); got != nil {
		t.Errorf("details survived deletion: %q", got)
	}
	if got, _ := c.GetEtagAssetDetails(ctx, ref); got != "" {
		t.Errorf("etag survived deletion: %q", got)
	}
}

func TestEntryExpires(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()
	ref := testRef()

	c.SetAssetDetails(ctx, ref, []byte("data"), time.Now().Add(time.Second))
	s.FastForward(2 * time.Second)

	got, err := c.GetAssetDetails(ctx, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("entry survived expiry: %q", got)
	}
}

func TestGetAssetDetails_ServerDown(t *testing.T) {
	c, s := newTestCache(t)
	s.Close()

	if _, err := c.GetAssetDetails(context.Background(), testRef()); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

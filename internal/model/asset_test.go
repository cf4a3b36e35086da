package model

import "testing"

func TestParseAssetRef(t *testing.T) {
	ref, err := ParseAssetRef("banners/3f2a9c1e.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Category != "banners" || ref.Name != "3f2a9c1e" || ref.Ext != "jpg" {
		t.Errorf("parsed %+v", ref)
	}
	if got := ref.String(); got != "banners/3f2a9c1e.jpg" {
		t.Errorf("String() = %q", got)
	}
	if got := ref.FileName(); got != "3f2a9c1e.jpg" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestParseAssetRef_NameWithDots(t *testing.T) {
	// only the last dot separates the extension
	ref, err := ParseAssetRef("services/a.b.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Name != "a.b" || ref.Ext != "png" {
		t.Errorf("parsed %+v", ref)
	}
}

func TestParseAssetRef_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"nocategory.jpg",
		"banners/",
		"/file.jpg",
		"banners/noext",
		"banners/trailingdot.",
		"banners/nested/file.jpg",
		"banners/.jpg",
	} {
		if _, err := ParseAssetRef(s); err == nil {
			t.Errorf("ParseAssetRef(%q): expected error", s)
		}
	}
}

func TestAssetRef_TextRoundTrip(t *testing.T) {
	ref := AssetRef{Category: "profile-images", Name: "abc-123", Ext: "webp"}

	text, err := ref.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var parsed AssetRef
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if parsed != ref {
		t.Errorf("round trip mismatch: got %+v; want %+v", parsed, ref)
	}
}

func TestAssetRef_IsZero(t *testing.T) {
	if !(AssetRef{}).IsZero() {
		t.Error("empty ref should be zero")
	}
	if (AssetRef{Category: "x"}).IsZero() {
		t.Error("non-empty ref should not be zero")
	}
}

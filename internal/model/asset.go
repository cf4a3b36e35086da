package model

import (
	"fmt"
	"strings"
)

// AssetRef is the identifier issued for every stored asset. Its string form
// is "{category}/{name}.{ext}" and it addresses one original file plus the
// derivable set of variant files. Once issued it never changes.
type AssetRef struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Ext      string `json:"ext"`
}

func (r AssetRef) String() string {
	return r.Category + "/" + r.Name + "." + r.Ext
}

// FileName returns the original's file name within its category directory.
func (r AssetRef) FileName() string {
	return r.Name + "." + r.Ext
}

func (r AssetRef) IsZero() bool {
	return r.Category == "" && r.Name == "" && r.Ext == ""
}

func (r AssetRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *AssetRef) UnmarshalText(text []byte) error {
	parsed, err := ParseAssetRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseAssetRef parses a previously issued "{category}/{name}.{ext}" string.
func ParseAssetRef(s string) (AssetRef, error) {
	category, file, ok := strings.Cut(s, "/")
	if !ok || category == "" || file == "" {
		return AssetRef{}, fmt.Errorf("asset ref %q is not of the form category/name.ext", s)
	}
	if strings.Contains(file, "/") {
		return AssetRef{}, fmt.Errorf("asset ref %q contains nested path segments", s)
	}
	dot := strings.LastIndex(file, ".")
	if dot <= 0 || dot == len(file)-1 {
		return AssetRef{}, fmt.Errorf("asset ref %q is missing a file extension", s)
	}
	return AssetRef{Category: category, Name: file[:dot], Ext: file[dot+1:]}, nil
}

package model

// Metadata holds the attributes read back from a stored original. It is
// always re-derivable from the file itself and never persisted elsewhere.
type Metadata struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	SizeBytes int64  `json:"size_bytes"`
}

// Variant describes one generated derivative of an original image.
type Variant struct {
	Tag       string `json:"tag"`
	FileKey   string `json:"file_key"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SizeBytes int64  `json:"size_bytes"`
}

type Variants []Variant

// VariantTagThumb marks the fixed-square thumbnail derivative; responsive
// derivatives use their pixel width as tag.
const VariantTagThumb = "thumb"

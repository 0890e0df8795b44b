package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	_ "golang.org/x/image/webp" // Register WEBP format decoder
)

// Format identifies one of the four supported pixel formats.
type Format string

const (
	FormatGIF  Format = "gif"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWEBP Format = "webp"
)

// MIME returns the Content-Type matching the format, or "" for an unknown
// format.
func (f Format) MIME() string {
	switch f {
	case FormatGIF:
		return "image/gif"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatWEBP:
		return "image/webp"
	}
	return ""
}

// Extension returns the canonical file extension (without the dot).
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

func (f Format) String() string {
	return string(f)
}

// FormatFromExtension maps a file extension (without the dot) to a format.
//
// Matching is case-sensitive: "png" is accepted, "PNG" is not.
func FormatFromExtension(ext string) (Format, bool) {
	switch ext {
	case "gif":
		return FormatGIF, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "png":
		return FormatPNG, true
	case "webp":
		return FormatWEBP, true
	}
	return "", false
}

// ParseFormat maps a format name as reported by image.DecodeConfig to a
// Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatGIF, FormatJPEG, FormatPNG, FormatWEBP:
		return Format(name), nil
	}
	return "", fmt.Errorf("unsupported image format %q", name)
}

// Metadata is the result of probing encoded image content.
type Metadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format Format `json:"format"`
	MIME   string `json:"mime"`
}

// Probe reads the format and dimensions from the image header without
// decoding the pixels.
func Probe(data []byte) (Metadata, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	format, err := ParseFormat(name)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Metadata{}, fmt.Errorf("%w: invalid dimensions %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}
	return Metadata{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		MIME:   format.MIME(),
	}, nil
}

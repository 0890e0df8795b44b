package imaging

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext    string
		want   Format
		wantOK bool
	}{
		{"gif", FormatGIF, true},
		{"jpg", FormatJPEG, true},
		{"jpeg", FormatJPEG, true},
		{"png", FormatPNG, true},
		{"webp", FormatWEBP, true},
		{"PNG", "", false},
		{"Jpg", "", false},
		{"bmp", "", false},
		{"tiff", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := FormatFromExtension(tt.ext)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FormatFromExtension(%q) = %q, %v; want %q, %v", tt.ext, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormat_MIMEAndExtension(t *testing.T) {
	tests := []struct {
		format   Format
		mime     string
		ext      string
		mimeFrom string
	}{
		{FormatGIF, "image/gif", "gif", "gif"},
		{FormatJPEG, "image/jpeg", "jpg", "jpeg"},
		{FormatPNG, "image/png", "png", "png"},
		{FormatWEBP, "image/webp", "webp", "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.MIME(); got != tt.mime {
				t.Errorf("MIME: got %s, want %s", got, tt.mime)
			}
			if got := tt.format.Extension(); got != tt.ext {
				t.Errorf("Extension: got %s, want %s", got, tt.ext)
			}
			parsed, err := ParseFormat(tt.mimeFrom)
			if err != nil || parsed != tt.format {
				t.Errorf("ParseFormat(%q) = %q, %v", tt.mimeFrom, parsed, err)
			}
		})
	}

	if Format("bmp").MIME() != "" {
		t.Error("unknown format should have no MIME type")
	}
	if _, err := ParseFormat("bmp"); err == nil {
		t.Error("ParseFormat should reject bmp")
	}
}

func TestProbe_Invalid(t *testing.T) {
	_, err := Probe([]byte("GIF8 but not really"))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

// Encoding then decoding must preserve the dimensions for every format.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	formats := []Format{FormatGIF, FormatJPEG, FormatPNG, FormatWEBP}
	sizes := [][2]int{{400, 300}, {17, 93}, {1, 1}}

	for _, format := range formats {
		for _, size := range sizes {
			src := mustNew(t, makeImageBytes(t, size[0], size[1], color.RGBA{10, 200, 30, 255}))

			var buf bytes.Buffer
			if err := src.Encode(&buf, format, DefaultEncodeOptions()); err != nil {
				t.Fatalf("%s %dx%d: Encode failed: %v", format, size[0], size[1], err)
			}

			meta, err := Probe(buf.Bytes())
			if err != nil {
				t.Fatalf("%s %dx%d: Probe failed: %v", format, size[0], size[1], err)
			}
			if meta.Format != format || meta.MIME != format.MIME() {
				t.Errorf("%s: probed format %s (%s)", format, meta.Format, meta.MIME)
			}

			decoded, err := FromBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("%s %dx%d: FromBytes failed: %v", format, size[0], size[1], err)
			}
			if decoded.Width() != size[0] || decoded.Height() != size[1] {
				t.Errorf("%s: got %dx%d, want %dx%d", format, decoded.Width(), decoded.Height(), size[0], size[1])
			}
		}
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	img := mustNew(t, makeImageBytes(t, 2, 2, color.Black))
	var buf bytes.Buffer
	if err := img.Encode(&buf, Format("bmp"), DefaultEncodeOptions()); err == nil {
		t.Error("Encode should fail for an unknown format")
	}
	if buf.Len() != 0 {
		t.Errorf("Encode wrote %d bytes for an unknown format", buf.Len())
	}
}

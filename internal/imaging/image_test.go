package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// makeImageBytes returns a PNG of the given size filled with c.
func makeImageBytes(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// createTestImageFile writes a PNG into a temp directory and returns its path.
func createTestImageFile(t *testing.T, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, makeImageBytes(t, width, height, color.RGBA{255, 0, 0, 255}), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func mustNew(t *testing.T, input any) *Image {
	t.Helper()
	img, err := New(input)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return img
}

func TestNew_FromBytes(t *testing.T) {
	img := mustNew(t, makeImageBytes(t, 400, 300, color.Black))

	if img.Width() != 400 || img.Height() != 300 {
		t.Errorf("dimensions: got %dx%d, want 400x300", img.Width(), img.Height())
	}
	if img.Format() != FormatPNG {
		t.Errorf("Format: got %s, want png", img.Format())
	}
	if img.MIME() != "image/png" {
		t.Errorf("MIME: got %s, want image/png", img.MIME())
	}
	if img.Realpath() != "" || img.Basename() != "" || img.Dirname() != "" {
		t.Errorf("in-memory image should have no path, got realpath=%q basename=%q dirname=%q",
			img.Realpath(), img.Basename(), img.Dirname())
	}
}

func TestNew_FromStringContent(t *testing.T) {
	img := mustNew(t, string(makeImageBytes(t, 10, 20, color.White)))

	if img.Width() != 10 || img.Height() != 20 {
		t.Errorf("dimensions: got %dx%d, want 10x20", img.Width(), img.Height())
	}
}

func TestNew_FromReader(t *testing.T) {
	img, err := FromReader(bytes.NewReader(makeImageBytes(t, 30, 40, color.White)))
	if err != nil {
		t.Fatalf("FromReader failed: %v", err)
	}
	if img.Width() != 30 || img.Height() != 40 {
		t.Errorf("dimensions: got %dx%d, want 30x40", img.Width(), img.Height())
	}
}

func TestNew_FromPath(t *testing.T) {
	path := createTestImageFile(t, "photo.png", 64, 32)

	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	want, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	if img.Realpath() != want {
		t.Errorf("Realpath: got %s, want %s", img.Realpath(), want)
	}
	if !filepath.IsAbs(img.Realpath()) {
		t.Errorf("Realpath should be absolute: %s", img.Realpath())
	}
	if img.Dirname() != filepath.Dir(want) {
		t.Errorf("Dirname: got %s, want %s", img.Dirname(), filepath.Dir(want))
	}
	if img.Basename() != "photo.png" {
		t.Errorf("Basename: got %s, want photo.png", img.Basename())
	}
	if img.Filename() != "photo" {
		t.Errorf("Filename: got %s, want photo", img.Filename())
	}
	if img.Extension() != "png" {
		t.Errorf("Extension: got %s, want png", img.Extension())
	}
	if img.Width() != 64 || img.Height() != 32 {
		t.Errorf("dimensions: got %dx%d, want 64x32", img.Width(), img.Height())
	}
}

func TestNew_ExtensionlessFile(t *testing.T) {
	path := createTestImageFile(t, "picture", 8, 8)

	img := mustNew(t, path)

	if img.Basename() != "picture" || img.Filename() != "picture" {
		t.Errorf("names: got basename=%q filename=%q, want picture", img.Basename(), img.Filename())
	}
	if img.Extension() != "" {
		t.Errorf("Extension: got %q, want empty", img.Extension())
	}
	if img.Format() != FormatPNG {
		t.Errorf("Format should come from content: got %s", img.Format())
	}
}

func TestNew_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"int", 42},
		{"struct", struct{}{}},
		{"float", 1.5},
		{"nil buffer", (*bytes.Buffer)(nil)},
		{"nil strings reader", (*strings.Reader)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
			if IsFailure(err) {
				t.Error("invalid input must be fatal, not a recoverable failure")
			}
		})
	}
}

func TestNew_DecodeError(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"single character", "a"},
		{"plain text bytes", []byte("hello, this is not an image")},
		{"plain text stream", strings.NewReader("still not an image")},
		{"empty buffer", []byte{}},
		{"truncated png", makeImageBytes(t, 10, 10, color.Black)[:8]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := New(tt.input)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("got %v, want ErrDecode", err)
			}
			if img != nil {
				t.Error("New should not return an image on decode failure")
			}
		})
	}
}

func TestNew_TextFileIsDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := New(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestOpen_NotAFile(t *testing.T) {
	tests := []string{
		"",
		"/nonexistent/path/to/image.png",
		t.TempDir(),
	}

	for _, path := range tests {
		_, err := Open(path)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Open(%q): got %v, want ErrInvalidInput", path, err)
		}
	}
}

func TestFromReader_Nil(t *testing.T) {
	_, err := FromReader(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}

	var buf *bytes.Buffer
	_, err = FromReader(buf)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("typed nil reader: got %v, want ErrInvalidInput", err)
	}
}

func TestPixels_IsCopy(t *testing.T) {
	img := mustNew(t, makeImageBytes(t, 4, 4, color.RGBA{0, 0, 255, 255}))

	p := img.Pixels()
	p.Set(0, 0, color.RGBA{255, 255, 255, 255})

	r, g, b, _ := img.Pixels().At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("modifying Pixels() changed the image: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestClone_Independent(t *testing.T) {
	path := createTestImageFile(t, "source.png", 40, 20)
	img := mustNew(t, path)

	c := img.Clone()
	if c.Realpath() != img.Realpath() || c.Basename() != img.Basename() {
		t.Error("Clone should copy path fields")
	}

	if _, err := c.Resize(ResizeOptions{Width: 10}); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if img.Width() != 40 || img.Height() != 20 {
		t.Errorf("resizing a clone changed the original: got %dx%d", img.Width(), img.Height())
	}
	if c.Width() != 10 || c.Height() != 5 {
		t.Errorf("clone dimensions: got %dx%d, want 10x5", c.Width(), c.Height())
	}
}

func TestInfo(t *testing.T) {
	path := createTestImageFile(t, "info.png", 12, 34)
	img := mustNew(t, path)

	info := img.Info()
	if info.Width != 12 || info.Height != 34 {
		t.Errorf("dimensions: got %dx%d, want 12x34", info.Width, info.Height)
	}
	if info.Format != FormatPNG || info.MIME != "image/png" {
		t.Errorf("format: got %s %s", info.Format, info.MIME)
	}
	if info.Basename != "info.png" {
		t.Errorf("Basename: got %s", info.Basename)
	}

	stat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.FileSizeBytes != stat.Size() {
		t.Errorf("FileSizeBytes: got %d, want %d", info.FileSizeBytes, stat.Size())
	}

	mem := mustNew(t, makeImageBytes(t, 5, 5, color.Black)).Info()
	if mem.FileSizeBytes != 0 || mem.Realpath != "" {
		t.Errorf("in-memory info should have no file: %+v", mem)
	}
}

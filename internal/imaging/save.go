package imaging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// filePerm is the mode of every file written by Save.
const filePerm os.FileMode = 0o644

// EncodeOptions carries the per-format encoder settings used by Save.
type EncodeOptions struct {
	JPEGQuality  int     // 1-100
	WebPQuality  float32 // 0-100, ignored when WebPLossless is set
	WebPLossless bool
	GIFNumColors int // 1-256
}

// DefaultEncodeOptions returns the settings Save uses.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality:  75,
		WebPQuality:  80,
		GIFNumColors: 256,
	}
}

// Encode writes the current pixel buffer to w in the given format.
func (img *Image) Encode(w io.Writer, format Format, opts EncodeOptions) error {
	switch format {
	case FormatGIF:
		return imaging.Encode(w, img.pixels, imaging.GIF, imaging.GIFNumColors(opts.GIFNumColors))
	case FormatJPEG:
		return imaging.Encode(w, img.pixels, imaging.JPEG, imaging.JPEGQuality(opts.JPEGQuality))
	case FormatPNG:
		return imaging.Encode(w, img.pixels, imaging.PNG)
	case FormatWEBP:
		return webp.Encode(w, img.pixels, &webp.Options{
			Lossless: opts.WebPLossless,
			Quality:  opts.WebPQuality,
		})
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// Save writes the image to path with DefaultEncodeOptions. See SaveWith.
func (img *Image) Save(path string) (*Image, error) {
	return img.SaveWith(path, DefaultEncodeOptions())
}

// SaveWith encodes the image and writes it to path, returning a new Image
// bound to the written file. The receiver is not modified.
//
// An empty path falls back to Realpath; if that is empty too, ErrPathRequired
// is returned. A path whose last component has no extension is a directory:
// the file is written there under the image's current basename and format.
// Otherwise the extension of path selects the output format.
//
// Expected failures (unsupported extension, empty basename, directory that
// cannot be created, encoder error) are returned as a FailureError. No file
// is left behind by a failed encode.
//
// The written file always has mode 0644, whatever the process umask; new
// directories are created with 0777 and do honor it.
func (img *Image) SaveWith(path string, opts EncodeOptions) (*Image, error) {
	if path == "" {
		path = img.realpath
	}
	if path == "" {
		return nil, ErrPathRequired
	}

	out := SplitPath(path)
	if !out.HasExtension {
		out = PathInfo{
			Dirname:   path,
			Basename:  img.basename,
			Filename:  img.filename,
			Extension: img.extension,
		}
	}

	if out.Basename == "" {
		return nil, failure("save", ErrEmptyBasename, nil)
	}

	format, ok := FormatFromExtension(out.Extension)
	if !ok {
		return nil, failure("save", ErrUnsupportedExtension, fmt.Errorf("extension %q", out.Extension))
	}

	if err := os.MkdirAll(out.Dirname, 0o777); err != nil {
		return nil, failure("save", ErrCreateDir, err)
	}

	dest := filepath.Join(out.Dirname, out.Basename)
	if err := img.writeFile(dest, format, opts); err != nil {
		return nil, failure("save", ErrEncode, err)
	}

	realpath, err := canonicalPath(dest)
	if err != nil {
		return nil, failure("save", ErrEncode, err)
	}

	saved := img.Clone()
	saved.realpath = realpath
	saved.setPathInfo(SplitPath(realpath))
	saved.format = format
	saved.mime = format.MIME()

	return saved, nil
}

// writeFile encodes into a temporary file next to dest and renames it into
// place, so dest is either fully written or untouched. The temp file is
// created 0600, so it is set to filePerm before the rename.
func (img *Image) writeFile(dest string, format Format, opts EncodeOptions) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := img.Encode(tmp, format, opts); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}

package imaging

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"reflect"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Image is a decoded raster together with its format and, when it came from
// or was written to a file, the path it is bound to.
//
// Resize and Rotate mutate the Image in place and return it for chaining.
// Save never mutates the receiver; it returns a new Image bound to the
// written file. An Image is not safe for concurrent use; independently
// constructed Images share no state.
type Image struct {
	basename  string
	dirname   string
	extension string
	filename  string
	realpath  string

	width  int
	height int
	format Format
	mime   string

	// pixels is exclusively owned. Transforms replace it, never write to it.
	pixels *image.NRGBA
}

// New decodes an image from input, which must be one of:
//   - string: a path to an existing regular file, or otherwise the raw
//     encoded content itself
//   - []byte: raw encoded content
//   - io.Reader: a stream that is read to EOF
//
// Any other value, including nil, fails with ErrInvalidInput. Content that
// is not a GIF, JPEG, PNG, or WEBP image fails with ErrDecode.
func New(input any) (*Image, error) {
	var (
		data []byte
		path string
		err  error
	)

	switch v := input.(type) {
	case string:
		if isRegularFile(v) {
			path = v
			data, err = os.ReadFile(v)
			if err != nil {
				return nil, fmt.Errorf("failed to read image: %w", err)
			}
		} else {
			data = []byte(v)
		}
	case []byte:
		data = v
	case io.Reader:
		if isNilReader(v) {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidInput, v)
		}
		data, err = io.ReadAll(v)
		if err != nil {
			return nil, fmt.Errorf("failed to read image stream: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidInput, input)
	}

	meta, err := Probe(data)
	if err != nil {
		return nil, err
	}

	img := &Image{
		width:  meta.Width,
		height: meta.Height,
		format: meta.Format,
		mime:   meta.MIME,
	}

	if path != "" {
		realpath, err := canonicalPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve image path: %w", err)
		}
		img.realpath = realpath
		img.setPathInfo(SplitPath(realpath))
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img.setPixels(imaging.Clone(decoded))

	return img, nil
}

// Open decodes the image file at path. Unlike New, a path that does not name
// a regular file is an error rather than raw content.
func Open(path string) (*Image, error) {
	if !isRegularFile(path) {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrInvalidInput, path)
	}
	return New(path)
}

// FromBytes decodes an image from an in-memory buffer.
func FromBytes(data []byte) (*Image, error) {
	return New(data)
}

// FromReader decodes an image from r, reading it to EOF.
func FromReader(r io.Reader) (*Image, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrInvalidInput)
	}
	return New(r)
}

// isNilReader reports whether r holds a nil pointer, map, chan, func, or
// slice behind a non-nil interface.
func isNilReader(r io.Reader) bool {
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// setPathInfo overwrites all four path-derived name fields.
func (img *Image) setPathInfo(info PathInfo) {
	img.dirname = info.Dirname
	img.basename = info.Basename
	img.filename = info.Filename
	img.extension = info.Extension
}

// setPixels replaces the pixel buffer and keeps width/height in step with it.
func (img *Image) setPixels(p *image.NRGBA) {
	img.pixels = p
	img.width = p.Bounds().Dx()
	img.height = p.Bounds().Dy()
}

func (img *Image) Basename() string  { return img.basename }
func (img *Image) Dirname() string   { return img.dirname }
func (img *Image) Extension() string { return img.extension }
func (img *Image) Filename() string  { return img.filename }

// Realpath is the canonical absolute path of the file the image was read
// from or last saved to, or "" for images built from memory.
func (img *Image) Realpath() string { return img.realpath }

func (img *Image) Width() int     { return img.width }
func (img *Image) Height() int    { return img.height }
func (img *Image) Format() Format { return img.format }
func (img *Image) MIME() string   { return img.mime }

// Pixels returns a copy of the current pixel buffer. Changes to the copy do
// not affect the Image.
func (img *Image) Pixels() *image.RGBA {
	return clone.AsRGBA(img.pixels)
}

// Clone returns a deep copy of img, including its pixel buffer.
func (img *Image) Clone() *Image {
	c := &Image{
		basename:  img.basename,
		dirname:   img.dirname,
		extension: img.extension,
		filename:  img.filename,
		realpath:  img.realpath,
		width:     img.width,
		height:    img.height,
		format:    img.format,
		mime:      img.mime,
	}
	if img.pixels != nil {
		c.pixels = imaging.Clone(img.pixels)
	}
	return c
}

// ImageInfo is a serializable snapshot of an Image's metadata.
type ImageInfo struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    Format `json:"format"`
	MIME      string `json:"mime"`
	Basename  string `json:"basename,omitempty"`
	Dirname   string `json:"dirname,omitempty"`
	Extension string `json:"extension,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Realpath  string `json:"realpath,omitempty"`

	// FileSizeBytes is the size of Realpath on disk, 0 when unknown.
	FileSizeBytes int64 `json:"file_size_bytes,omitempty"`
}

// Info returns the image's metadata. FileSizeBytes is filled in when the
// image is bound to a file that can be stat'd.
func (img *Image) Info() *ImageInfo {
	info := &ImageInfo{
		Width:     img.width,
		Height:    img.height,
		Format:    img.format,
		MIME:      img.mime,
		Basename:  img.basename,
		Dirname:   img.dirname,
		Extension: img.extension,
		Filename:  img.filename,
		Realpath:  img.realpath,
	}
	if img.realpath != "" {
		if stat, err := os.Stat(img.realpath); err == nil {
			info.FileSizeBytes = stat.Size()
		}
	}
	return info
}

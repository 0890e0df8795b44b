package imaging

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeMode selects how the target dimensions are derived.
type ResizeMode string

// ModeClip keeps the aspect ratio by deriving one side from the other.
const ModeClip ResizeMode = "clip"

// ResizeOptions describes a resize request. Zero Width or Height means the
// side was not given.
type ResizeOptions struct {
	Mode   ResizeMode // defaults to ModeClip
	Width  int
	Height int

	// Filter is the resampling filter; nil means imaging.Linear.
	Filter *imaging.ResampleFilter
}

// Resize resamples the image to the dimensions computed from opts and
// returns img.
//
// An unsupported mode or a request with neither a positive width nor a
// positive height returns a FailureError and leaves img unchanged.
func (img *Image) Resize(opts ResizeOptions) (*Image, error) {
	width, height, err := img.resizedSize(opts)
	if err != nil {
		return nil, err
	}

	filter := imaging.Linear
	if opts.Filter != nil {
		filter = *opts.Filter
	}

	img.setPixels(imaging.Resize(img.pixels, width, height, filter))
	return img, nil
}

// resizedSize computes the output dimensions for opts.
//
// In clip mode the requested width wins when either the source or the
// request is wider than tall; otherwise the requested height wins. A missing
// side starts out equal to the given one before that decision is made.
func (img *Image) resizedSize(opts ResizeOptions) (int, int, error) {
	mode := opts.Mode
	if mode == "" {
		mode = ModeClip
	}
	if mode != ModeClip {
		return 0, 0, failure("resize", ErrUnsupportedMode, fmt.Errorf("mode %q", mode))
	}

	optWidth, optHeight := opts.Width, opts.Height
	if optWidth < 0 || optHeight < 0 {
		return 0, 0, failure("resize", ErrMissingDimensions, fmt.Errorf("negative size %dx%d", optWidth, optHeight))
	}
	switch {
	case optWidth == 0 && optHeight == 0:
		return 0, 0, failure("resize", ErrMissingDimensions, nil)
	case optWidth == 0:
		optWidth = optHeight
	case optHeight == 0:
		optHeight = optWidth
	}

	isWide := img.width > img.height
	isOptWide := optWidth > optHeight

	var width, height int
	if isWide || isOptWide {
		width = optWidth
		height = roundDim(float64(img.height) * float64(width) / float64(img.width))
	} else {
		height = optHeight
		width = roundDim(float64(img.width) * float64(height) / float64(img.height))
	}
	return width, height, nil
}

// roundDim rounds half away from zero and never returns less than one pixel.
func roundDim(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}

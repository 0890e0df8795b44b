package imaging

import (
	"errors"
	"fmt"
)

// Fatal errors. These stop the operation and are never reported as a
// FailureError.
var (
	// ErrInvalidInput is returned when the constructor receives something other
	// than a path, a byte buffer, or a reader.
	ErrInvalidInput = errors.New("invalid image input")

	// ErrDecode is returned when the content is not a recognizable GIF, JPEG,
	// PNG, or WEBP image.
	ErrDecode = errors.New("cannot decode image")

	// ErrPathRequired is returned by Save when no path is given and the image
	// has no realpath to fall back to.
	ErrPathRequired = errors.New("output path required")
)

// ErrFailed matches every recoverable failure via errors.Is.
var ErrFailed = errors.New("operation failed")

// Reasons carried by a FailureError.
var (
	ErrUnsupportedMode      = errors.New("unsupported resize mode")
	ErrMissingDimensions    = errors.New("resize needs a positive width or height")
	ErrUnsupportedExtension = errors.New("unsupported output extension")
	ErrEmptyBasename        = errors.New("output basename is empty")
	ErrCreateDir            = errors.New("cannot create output directory")
	ErrEncode               = errors.New("cannot encode image")
)

// FailureError reports an expected, recoverable failure. The image the
// operation was called on is left unchanged.
type FailureError struct {
	Op     string // "resize" or "save"
	Reason error  // one of the ErrXxx reasons above
	Err    error  // underlying cause, may be nil
}

func (e *FailureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Reason)
}

// Unwrap exposes ErrFailed, the reason, and the cause to errors.Is/As.
func (e *FailureError) Unwrap() []error {
	errs := []error{ErrFailed, e.Reason}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func failure(op string, reason, err error) *FailureError {
	return &FailureError{Op: op, Reason: reason, Err: err}
}

// IsFailure reports whether err is a recoverable failure rather than a fatal
// error.
func IsFailure(err error) bool {
	return errors.Is(err, ErrFailed)
}

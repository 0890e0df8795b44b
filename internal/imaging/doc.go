// Package imaging provides the Image value object used by the MCP server:
// decode a GIF, JPEG, PNG, or WEBP image from a path, buffer, or stream,
// resize or rotate it, and save it back to disk.
//
// # Lifecycle
//
//	img, err := imaging.New("/photos/cat.png")  // probe + decode
//	img, err = img.Resize(imaging.ResizeOptions{Width: 200})
//	img.Rotate(90, nil)
//	saved, err := img.Save("/thumbs/cat.webp") // new Image bound to the file
//
// Resize and Rotate mutate the receiver and return it. Save returns a new,
// independent Image and leaves the receiver untouched.
//
// # Output Format
//
// Save picks the encoder from the extension of the target path (gif, jpg,
// jpeg, png, webp; case-sensitive). A target without an extension is a
// directory, and the image keeps its current basename and extension.
//
// # Error Handling
//
// Two kinds of errors are returned:
//   - Fatal errors: ErrInvalidInput, ErrDecode, ErrPathRequired
//   - Recoverable failures: a *FailureError matching ErrFailed, for an
//     unsupported resize mode, missing resize dimensions, an unsupported
//     output extension, an empty output basename, a directory that cannot be
//     created, or an encoder error. Use IsFailure to branch on them.
//
// # Thread Safety
//
// An Image is not safe for concurrent use. Independently constructed Images
// share no state. The ImageCache type is safe for concurrent use and only
// hands out clones.
package imaging

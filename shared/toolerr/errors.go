// Package toolerr holds the error values shared by the frame, grid, export and
// keying packages. Callers wrap them with fmt.Errorf and test with errors.Is.
package toolerr

import "errors"

var (
	// ErrNoAnimation is returned when an operation needs loaded frames and none are.
	ErrNoAnimation = errors.New("no animation loaded")

	// ErrInvalidSelection covers a missing, zero-area or out-of-bounds selection.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidGridConfig is returned for a pixel size below 1 or negative offsets.
	ErrInvalidGridConfig = errors.New("invalid grid config")

	// ErrDecode wraps failures reading the source animation.
	ErrDecode = errors.New("decode failed")

	// ErrEncode wraps failures writing an output artifact.
	ErrEncode = errors.New("encode failed")
)

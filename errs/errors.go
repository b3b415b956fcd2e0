// Package errs defines the sentinel errors returned by rdagrid.
//
// Every failure returned by the encoder, the reader and the driver layer wraps
// exactly one of these sentinels, so callers can classify it with errors.Is.
package errs

import "errors"

// Validation errors, detected before any output is created.
var (
	ErrInvalidDimensions = errors.New("raster dimensions must be positive")
	ErrRasterTooBig      = errors.New("too big raster: element count exceeds the 32-bit length field")
	ErrInvalidOption     = errors.New("invalid creation option")
)

// I/O errors raised while producing a file.
var (
	ErrOpenFailed      = errors.New("unable to create file")
	ErrReadFailed      = errors.New("failed to read source row")
	ErrWriteFailed     = errors.New("failed to write output stream")
	ErrUserInterrupted = errors.New("user terminated CreateCopy()")
	ErrReopenFailed    = errors.New("failed to reopen written file")
)

// Reader errors.
var (
	ErrNotRData    = errors.New("not an R serialized object file")
	ErrMalformed   = errors.New("malformed R serialized object")
	ErrUnsupported = errors.New("unsupported R object layout")
)

// Registry errors.
var (
	ErrDriverExists   = errors.New("driver already registered")
	ErrDriverNotFound = errors.New("driver not found")
	ErrNotSupported   = errors.New("operation not supported by driver")
)

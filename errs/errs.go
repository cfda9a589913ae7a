// Package errs defines the sentinel errors returned by sparcode packages.
//
// Callers should compare with errors.Is; call sites wrap these with additional
// detail using fmt.Errorf("%w: ...").
package errs

import "errors"

// Configuration errors.
var (
	ErrInvalidImageSize      = errors.New("invalid image size")
	ErrInvalidPatchSize      = errors.New("invalid patch size")
	ErrPatchLargerThanImage  = errors.New("patch larger than image")
	ErrInvalidCoeffCount     = errors.New("invalid coefficient count")
	ErrInvalidReduceSpread   = errors.New("invalid reduce spread")
	ErrUnsupportedCodingType = errors.New("unsupported coding type")
	ErrInvalidNonlinearType  = errors.New("invalid nonlinear type")
	ErrInvalidPolarityType   = errors.New("invalid polarity split type")
	ErrInvalidReduceType     = errors.New("invalid reduce type")
	ErrInvalidCompression    = errors.New("invalid compression type")
)

// Data shape errors.
var (
	ErrInvalidGridData         = errors.New("grid data length does not match rows*cols")
	ErrInvalidDictionaryShape  = errors.New("invalid dictionary shape")
	ErrInconsistentDictionary  = errors.New("dictionary views are inconsistent")
	ErrDictionaryMismatch      = errors.New("dictionary does not match coder parameters")
	ErrObservationSizeMismatch = errors.New("observation size mismatch")
	ErrScratchTooSmall         = errors.New("scratch arena too small")
	ErrOutputTooSmall          = errors.New("output vector too small")
)

// Feature blob errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrChecksumMismatch   = errors.New("payload checksum mismatch")
	ErrCorruptPayload     = errors.New("corrupt payload")
	ErrIndexOutOfRange    = errors.New("sparse index out of range")
	ErrIndexNotIncreasing = errors.New("sparse indices not strictly increasing")

	ErrDecodedSizeExceeded = errors.New("decoded payload exceeds size limit")
)

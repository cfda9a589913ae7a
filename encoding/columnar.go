package encoding

import "iter"

// ColumnarEncoder appends values of one column to an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded payload. It is valid until the next write or
	// Finish and must not be modified.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the payload size in bytes.
	Size() int

	// Finish returns the buffer to its pool. The encoder is unusable afterwards
	// and every other method panics.
	Finish()

	// Write encodes a single value.
	Write(data T)

	// WriteSlice encodes values in order.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values of one column back from a payload.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count decoded values. Malformed or short payloads
	// yield fewer values.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false if index is outside [0, count)
	// or the payload is too short.
	At(data []byte, index int, count int) (T, bool)
}

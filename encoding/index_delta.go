package encoding

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/internal/pool"
)

// IndexDeltaEncoder writes a strictly increasing index column as uvarint
// deltas. The first index is written as a delta from -1, so every stored
// delta is at least 1 for well-formed input.
//
// A dense run of consecutive cells costs one byte per index.
type IndexDeltaEncoder struct {
	buf   *pool.ByteBuffer
	prev  int
	count int
}

var _ ColumnarEncoder[int] = (*IndexDeltaEncoder)(nil)

// NewIndexDeltaEncoder creates an index encoder.
func NewIndexDeltaEncoder() *IndexDeltaEncoder {
	return &IndexDeltaEncoder{
		buf:  pool.GetFeatureBuffer(),
		prev: -1,
	}
}

// Write encodes idx. It panics if idx does not exceed the previous index.
func (e *IndexDeltaEncoder) Write(idx int) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if idx <= e.prev {
		panic(fmt.Sprintf("index %d written after %d", idx, e.prev))
	}

	e.buf.Grow(binary.MaxVarintLen64)
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(idx-e.prev))
	e.prev = idx
	e.count++
}

// WriteSlice encodes indices in order.
func (e *IndexDeltaEncoder) WriteSlice(indices []int) {
	for _, idx := range indices {
		e.Write(idx)
	}
}

// Bytes returns the encoded payload.
func (e *IndexDeltaEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded indices.
func (e *IndexDeltaEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *IndexDeltaEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *IndexDeltaEncoder) Finish() {
	if e.buf != nil {
		pool.PutFeatureBuffer(e.buf)
		e.buf = nil
	}
	e.prev = -1
	e.count = 0
}

// IndexDeltaDecoder reads payloads written by IndexDeltaEncoder.
type IndexDeltaDecoder struct{}

var _ ColumnarDecoder[int] = IndexDeltaDecoder{}

// NewIndexDeltaDecoder creates an index decoder.
func NewIndexDeltaDecoder() IndexDeltaDecoder {
	return IndexDeltaDecoder{}
}

// All yields up to count indices, stopping at the first malformed varint.
func (d IndexDeltaDecoder) All(data []byte, count int) iter.Seq[int] {
	return func(yield func(int) bool) {
		prev := -1
		for range count {
			delta, n := binary.Uvarint(data)
			if n <= 0 {
				return
			}
			data = data[n:]
			prev += int(delta) //nolint: gosec
			if !yield(prev) {
				return
			}
		}
	}
}

// At returns the index at position index. Deltas are sequential, so this
// scans the payload from the start.
func (d IndexDeltaDecoder) At(data []byte, index int, count int) (int, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for idx := range d.All(data, count) {
		if i == index {
			return idx, true
		}
		i++
	}

	return 0, false
}

// Decode decodes exactly count indices into dst, reusing its capacity.
//
// It fails if the payload is malformed, has trailing bytes, contains a zero
// delta, or yields an index outside [0, size).
func (d IndexDeltaDecoder) Decode(data []byte, count, size int, dst []int) ([]int, error) {
	dst = dst[:0]
	prev := -1
	for i := range count {
		delta, n := binary.Uvarint(data)
		if n <= 0 {
			return dst, fmt.Errorf("%w: malformed index delta at position %d", errs.ErrCorruptPayload, i)
		}
		data = data[n:]

		if delta == 0 {
			return dst, fmt.Errorf("%w: position %d", errs.ErrIndexNotIncreasing, i)
		}
		if delta > uint64(size) || prev+int(delta) >= size { //nolint: gosec
			return dst, fmt.Errorf("%w: position %d exceeds %d cells", errs.ErrIndexOutOfRange, i, size)
		}
		prev += int(delta) //nolint: gosec
		dst = append(dst, prev)
	}
	if len(data) != 0 {
		return dst, fmt.Errorf("%w: %d trailing index bytes", errs.ErrCorruptPayload, len(data))
	}

	return dst, nil
}

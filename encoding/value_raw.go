package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/sparcode/endian"
	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/internal/pool"
)

// ValueRawEncoder writes float64 values as their IEEE 754 bits in a fixed byte order.
type ValueRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*ValueRawEncoder)(nil)

// NewValueRawEncoder creates a raw value encoder using engine's byte order.
func NewValueRawEncoder(engine endian.EndianEngine) *ValueRawEncoder {
	return &ValueRawEncoder{
		engine: engine,
		buf:    pool.GetFeatureBuffer(),
	}
}

// Write encodes a single value.
func (e *ValueRawEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(8)
	e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(val))
}

// WriteSlice encodes values with a single buffer growth.
func (e *ValueRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count += len(values)
	e.buf.Grow(len(values) * 8)
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v))
	}
}

// Bytes returns the encoded payload.
func (e *ValueRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *ValueRawEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes, always 8*Len.
func (e *ValueRawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *ValueRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutFeatureBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// ValueRawDecoder reads payloads written by ValueRawEncoder.
type ValueRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = ValueRawDecoder{}

// NewValueRawDecoder creates a decoder for payloads in engine's byte order.
func NewValueRawDecoder(engine endian.EndianEngine) ValueRawDecoder {
	return ValueRawDecoder{engine: engine}
}

// All yields count values, or nothing if data is shorter than 8*count bytes.
func (d ValueRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*8 {
			return
		}

		for i := range count {
			if !yield(math.Float64frombits(d.engine.Uint64(data[i*8:]))) {
				return
			}
		}
	}
}

// At returns the value at index.
func (d ValueRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count || len(data) < (index+1)*8 {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[index*8:])), true
}

// Decode decodes exactly count values into dst, reusing its capacity.
//
// The payload must be exactly 8*count bytes.
func (d ValueRawDecoder) Decode(data []byte, count int, dst []float64) ([]float64, error) {
	if len(data) != count*8 {
		return dst[:0], fmt.Errorf("%w: value payload is %d bytes, want %d", errs.ErrCorruptPayload, len(data), count*8)
	}

	dst = dst[:0]
	for v := range d.All(data, count) {
		dst = append(dst, v)
	}

	return dst, nil
}

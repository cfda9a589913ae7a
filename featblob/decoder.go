package featblob

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/sparcode/coder"
	"github.com/arloliu/sparcode/compress"
	"github.com/arloliu/sparcode/dict"
	"github.com/arloliu/sparcode/encoding"
	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/internal/hash"
	"github.com/arloliu/sparcode/section"
	"github.com/arloliu/sparcode/sparse"
)

// Decoder reads a single feature blob. The header is parsed and the checksum
// verified when the decoder is created; payloads are decompressed on Decode.
type Decoder struct {
	header     section.FeatureHeader
	idxPayload []byte
	valPayload []byte
}

// NewDecoder parses blob. The decoder keeps references into blob, which must
// not be modified while the decoder is in use.
func NewDecoder(blob []byte) (*Decoder, error) {
	header, err := section.ParseFeatureHeader(blob)
	if err != nil {
		return nil, err
	}

	if int(header.Count) > header.Size() {
		return nil, fmt.Errorf("%w: %d cells in a geometry of %d", errs.ErrCorruptPayload, header.Count, header.Size())
	}

	// Every stored index takes at least one byte and every value exactly eight,
	// so uncompressed payloads bound Count before anything is decoded.
	if header.Flag.IndexCompression() == format.CompressionNone && header.Count > header.IndexPayloadSize {
		return nil, fmt.Errorf("%w: %d-byte index payload cannot hold %d cells",
			errs.ErrCorruptPayload, header.IndexPayloadSize, header.Count)
	}
	if header.Flag.ValueCompression() == format.CompressionNone && uint64(header.ValuePayloadSize) != 8*uint64(header.Count) {
		return nil, fmt.Errorf("%w: %d-byte value payload for %d cells",
			errs.ErrCorruptPayload, header.ValuePayloadSize, header.Count)
	}

	idxEnd := section.HeaderSize + int(header.IndexPayloadSize)
	valEnd := idxEnd + int(header.ValuePayloadSize)
	if valEnd != len(blob) {
		return nil, fmt.Errorf("%w: header describes %d bytes, blob has %d", errs.ErrCorruptPayload, valEnd, len(blob))
	}

	d := &Decoder{
		header:     header,
		idxPayload: blob[section.HeaderSize:idxEnd],
		valPayload: blob[idxEnd:valEnd],
	}
	if sum := hash.Checksum32(d.idxPayload, d.valPayload); sum != header.Checksum {
		return nil, fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", errs.ErrChecksumMismatch, header.Checksum, sum)
	}

	return d, nil
}

// Header returns the parsed header.
func (d *Decoder) Header() section.FeatureHeader {
	return d.header
}

// Geometry returns the geometry recorded in the blob.
func (d *Decoder) Geometry() coder.Geometry {
	return coder.Geometry{
		PooledRows: int(d.header.PooledRows),
		PooledCols: int(d.header.PooledCols),
		WordCount:  int(d.header.WordCount),
		Channels:   int(d.header.Channels),
	}
}

// Count returns the number of cells in the blob.
func (d *Decoder) Count() int {
	return int(d.header.Count)
}

// VerifyDictionary checks that the blob was coded with dictionary dd.
func (d *Decoder) VerifyDictionary(dd *dict.Dictionary) error {
	if uint32(dd.WordCount()) != d.header.WordCount || dd.Fingerprint() != d.header.Fingerprint { //nolint: gosec
		return fmt.Errorf("%w: blob fingerprint 0x%016x over %d atoms, dictionary 0x%016x over %d atoms",
			errs.ErrDictionaryMismatch, d.header.Fingerprint, d.header.WordCount, dd.Fingerprint(), dd.WordCount())
	}

	return nil
}

// Decode returns the blob's cells in a new vector of exactly Count capacity.
// The vector is allocated only after both payloads have been restored and
// found large enough for Count cells.
func (d *Decoder) Decode() (*sparse.Vector, error) {
	idxRaw, valRaw, err := d.payloads()
	if err != nil {
		return nil, err
	}

	v := sparse.New(d.Count())
	if err := d.decodeCells(idxRaw, valRaw, v); err != nil {
		return nil, err
	}

	return v, nil
}

// DecodeInto replaces the contents of v with the blob's cells. v must be able
// to hold Count cells.
func (d *Decoder) DecodeInto(v *sparse.Vector) error {
	count := d.Count()
	if v.Cap() < count {
		return fmt.Errorf("%w: capacity %d, blob holds %d cells", errs.ErrOutputTooSmall, v.Cap(), count)
	}
	v.Reset()

	idxRaw, valRaw, err := d.payloads()
	if err != nil {
		return err
	}

	return d.decodeCells(idxRaw, valRaw, v)
}

// payloads restores both payloads, bounding each by the largest size Count
// cells can encode to.
func (d *Decoder) payloads() ([]byte, []byte, error) {
	count := d.Count()

	idxRaw, err := decompress(d.header.Flag.IndexCompression(), d.idxPayload, count*binary.MaxVarintLen64)
	if err != nil {
		return nil, nil, err
	}
	if len(idxRaw) < count {
		return nil, nil, fmt.Errorf("%w: %d-byte index payload cannot hold %d cells", errs.ErrCorruptPayload, len(idxRaw), count)
	}

	valRaw, err := decompress(d.header.Flag.ValueCompression(), d.valPayload, count*8)
	if err != nil {
		return nil, nil, err
	}
	if len(valRaw) != count*8 {
		return nil, nil, fmt.Errorf("%w: %d-byte value payload for %d cells", errs.ErrCorruptPayload, len(valRaw), count)
	}

	return idxRaw, valRaw, nil
}

func (d *Decoder) decodeCells(idxRaw, valRaw []byte, v *sparse.Vector) error {
	count := d.Count()

	indices, err := encoding.NewIndexDeltaDecoder().Decode(idxRaw, count, d.header.Size(), v.Idx[:0])
	if err != nil {
		return err
	}
	values, err := encoding.NewValueRawDecoder(d.header.Flag.GetEndianEngine()).Decode(valRaw, count, v.Val[:0])
	if err != nil {
		return err
	}
	for i, val := range values {
		if val == 0 {
			return fmt.Errorf("%w: zero value stored for cell %d", errs.ErrCorruptPayload, indices[i])
		}
	}
	v.Count = count

	return nil
}

func decompress(comp format.CompressionType, payload []byte, limit int) ([]byte, error) {
	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	raw, err := codec.DecompressLimit(payload, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload: %w", errs.ErrCorruptPayload, comp, err)
	}

	return raw, nil
}

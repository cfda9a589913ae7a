package featblob

import (
	"fmt"

	"github.com/arloliu/sparcode/coder"
	"github.com/arloliu/sparcode/compress"
	"github.com/arloliu/sparcode/encoding"
	"github.com/arloliu/sparcode/internal/hash"
	"github.com/arloliu/sparcode/internal/options"
	"github.com/arloliu/sparcode/section"
	"github.com/arloliu/sparcode/sparse"
)

// Encoder writes sparse vectors of one geometry as feature blobs.
type Encoder struct {
	cfg   encoderConfig
	geo   coder.Geometry
	stats compress.CompressionStats
}

// NewEncoder creates an encoder for vectors of geo coded with the dictionary
// identified by fingerprint.
func NewEncoder(geo coder.Geometry, fingerprint uint64, opts ...EncoderOption) (*Encoder, error) {
	if err := checkGeometryFits(geo.Size()); err != nil {
		return nil, err
	}

	e := &Encoder{
		cfg: encoderConfig{
			header: section.NewFeatureHeader(geo.PooledRows, geo.PooledCols, geo.WordCount, geo.Channels, fingerprint),
		},
		geo: geo,
	}
	if err := e.cfg.setIndexCompression(e.cfg.header.Flag.IndexCompression()); err != nil {
		return nil, err
	}
	if err := e.cfg.setValueCompression(e.cfg.header.Flag.ValueCompression()); err != nil {
		return nil, err
	}
	if err := options.Apply(&e.cfg, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Header returns a copy of the header template. Count, payload sizes and
// checksum are filled per blob by Encode.
func (e *Encoder) Header() section.FeatureHeader {
	return *e.cfg.header
}

// Stats returns the combined compression statistics of the last Encode.
func (e *Encoder) Stats() compress.CompressionStats {
	return e.stats
}

// Encode serializes v into a new blob. v must hold strictly increasing indices
// within the encoder's geometry.
func (e *Encoder) Encode(v *sparse.Vector) ([]byte, error) {
	if err := v.Validate(e.geo.Size()); err != nil {
		return nil, err
	}

	engine := e.cfg.header.Flag.GetEndianEngine()

	idxEnc := encoding.NewIndexDeltaEncoder()
	defer idxEnc.Finish()
	idxEnc.WriteSlice(v.Indices())

	valEnc := encoding.NewValueRawEncoder(engine)
	defer valEnc.Finish()
	valEnc.WriteSlice(v.Values())

	idxPayload, err := e.cfg.indexCodec.Compress(idxEnc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress index payload: %w", err)
	}
	valPayload, err := e.cfg.valueCodec.Compress(valEnc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress value payload: %w", err)
	}

	e.stats = compress.CompressionStats{
		Algorithm:      e.cfg.header.Flag.IndexCompression(),
		OriginalSize:   int64(idxEnc.Size()),
		CompressedSize: int64(len(idxPayload)),
	}.Add(compress.CompressionStats{
		OriginalSize:   int64(valEnc.Size()),
		CompressedSize: int64(len(valPayload)),
	})

	header := *e.cfg.header
	header.Count = uint32(v.Count)
	header.IndexPayloadSize = uint32(len(idxPayload))
	header.ValuePayloadSize = uint32(len(valPayload))
	header.Checksum = hash.Checksum32(idxPayload, valPayload)

	blob := make([]byte, 0, section.HeaderSize+len(idxPayload)+len(valPayload))
	blob = header.AppendTo(blob)
	blob = append(blob, idxPayload...)
	blob = append(blob, valPayload...)

	return blob, nil
}

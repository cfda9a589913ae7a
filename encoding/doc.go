// Package encoding implements the payload encodings of feature blobs.
//
// A sparse feature vector is stored as two columns of equal length:
//
//   - indices: strictly increasing cell indices, written as uvarint deltas by
//     IndexDeltaEncoder. The first index is stored as-is; dense outputs
//     produce runs of 1-byte deltas.
//   - values: float64 cell values, written as raw IEEE 754 bits in the blob's
//     byte order by ValueRawEncoder.
//
// Encoders accumulate into pooled byte buffers and must be released with
// Finish once the caller has copied or compressed their Bytes:
//
//	enc := encoding.NewIndexDeltaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice(v.Indices())
//	payload := enc.Bytes()
//
// Decoders are stateless values. All iterates a payload without validation;
// Decode validates it and fills a caller-provided slice.
package encoding

// Package featblob serializes sparse feature vectors produced by the coder.
//
// A blob records the output geometry, the fingerprint of the dictionary the
// features were coded with, and two independently compressed payloads: the
// delta-encoded cell indices and the raw cell values. An xxHash checksum over
// the stored payloads detects corruption before anything is decompressed.
//
// Encoding:
//
//	enc, err := featblob.NewEncoder(c.Geometry(), d.Fingerprint(),
//	    featblob.WithIndexCompression(format.CompressionS2),
//	    featblob.WithValueCompression(format.CompressionZstd),
//	)
//	blob, err := enc.Encode(out)
//
// Decoding:
//
//	dec, err := featblob.NewDecoder(blob)
//	if err := dec.VerifyDictionary(d); err != nil {
//	    return err
//	}
//	v, err := dec.Decode()
//
// An Encoder can encode any number of vectors of its geometry but is not safe
// for concurrent use. Decoders are read-only and may be shared.
package featblob

// Package compress provides the payload codecs of serialized feature blobs.
//
// A feature blob carries two payloads, the delta-encoded cell indices and the
// raw cell values. Each is compressed independently after encoding with one of
//
//   - None: payload stored as encoded
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// Index payloads of dense outputs are runs of small varints and compress well
// with every algorithm; value payloads are raw float64 bits and mostly benefit
// from Zstd when values repeat, as they do after GlobalOrder quantization.
//
// All codecs are stateless values backed by pooled encoders where the
// underlying library supports reuse, and are safe for concurrent use:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// Zstd uses the pure Go klauspost/compress implementation by default. Building
// with cgo and the gozstd tag switches it to the libzstd binding of
// valyala/gozstd; both produce standard zstd frames and interoperate.
package compress

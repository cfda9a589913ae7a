// Package sparcode turns images into sparse feature vectors by coding every
// patch against a fixed dictionary with matching pursuit and pooling the
// resulting coefficients over local neighborhoods.
//
// # Core Features
//
//   - Gram-accelerated matching pursuit with a deterministic tie-break
//   - Linear, Logistic and GlobalOrder coefficient nonlinearities
//   - Polarity splitting into one or two channels
//   - Subsample, max and sum pooling over spread x spread neighborhoods
//   - Bounded, image-size independent scratch memory
//   - Compact serialized feature blobs with optional compression
//
// # Basic Usage
//
// Coding an observation:
//
//	d, _ := sparcode.NewDictionary(wordCount, 9, atoms)
//	c, _ := sparcode.NewCoder(d,
//	    coder.WithImageSize(rows, cols),
//	    coder.WithPatchSize(3, 3),
//	    coder.WithCoeffCount(2),
//	    coder.WithReduce(format.ReduceMaxKeepSign, 2),
//	)
//	scratch := c.NewScratch()
//	defer scratch.Release()
//	out := c.NewOutput()
//	c.Code(observation, scratch, out)
//	for idx, val := range out.All() {
//	    fmt.Printf("cell %d = %f\n", idx, val)
//	}
//
// Storing and reading the features:
//
//	blob, _ := sparcode.EncodeFeatures(c, out)
//	dec, _ := sparcode.NewFeatureDecoder(blob)
//	features, _ := dec.Decode()
//
// # Package Structure
//
// This package provides top-level wrappers around the coder and featblob
// packages for the common cases. Use those packages directly for full control.
package sparcode

import (
	"github.com/arloliu/sparcode/coder"
	"github.com/arloliu/sparcode/dict"
	"github.com/arloliu/sparcode/featblob"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/sparse"
)

var defaultFeatureOptions = []featblob.EncoderOption{
	featblob.WithLittleEndian(),
	featblob.WithIndexCompression(format.CompressionNone),
	featblob.WithValueCompression(format.CompressionZstd),
}

// NewDictionary builds a dictionary from wordCount atoms of sampleCount
// samples each, stored atom after atom.
func NewDictionary(wordCount, sampleCount int, atoms []float64) (*dict.Dictionary, error) {
	return dict.FromAtoms(wordCount, sampleCount, atoms)
}

// NewCoder creates a coder over d configured by opts.
func NewCoder(d *dict.Dictionary, opts ...coder.Option) (*coder.Coder, error) {
	return coder.New(d, opts...)
}

// NewGeometry returns the output capacity, in cells, of a coding call.
func NewGeometry(rows, cols, wordCount int, polarity format.PolaritySplitType, spread int) int {
	return coder.NewGeometry(rows, cols, wordCount, polarity, spread)
}

// CodingTmpsLength returns the scratch size, in bytes, of a coding call.
func CodingTmpsLength(rows, cols, patchRows, patchCols int, codingType format.CodingType,
	wordCount, coeffCount, spread int,
) int {
	return coder.CodingTmpsLength(rows, cols, patchRows, patchCols, codingType, wordCount, coeffCount, spread)
}

// CodeImage validates its arguments and codes obs into out.
// It returns the number of realized cells.
func CodeImage(p coder.Params, d *dict.Dictionary, obs []float64, scratch *coder.Scratch, out *sparse.Vector) (int, error) {
	return coder.CodeImage(p, d, obs, scratch, out)
}

// NewFeatureEncoder creates a feature blob encoder for the output of c.
// Without options, indices are stored uncompressed and values with Zstd.
func NewFeatureEncoder(c *coder.Coder, opts ...featblob.EncoderOption) (*featblob.Encoder, error) {
	all := make([]featblob.EncoderOption, 0, len(defaultFeatureOptions)+len(opts))
	all = append(all, defaultFeatureOptions...)
	all = append(all, opts...)

	return featblob.NewEncoder(c.Geometry(), c.Dictionary().Fingerprint(), all...)
}

// EncodeFeatures serializes out, the output of c, with the default options.
func EncodeFeatures(c *coder.Coder, out *sparse.Vector) ([]byte, error) {
	enc, err := NewFeatureEncoder(c)
	if err != nil {
		return nil, err
	}

	return enc.Encode(out)
}

// NewFeatureDecoder parses a feature blob.
func NewFeatureDecoder(blob []byte) (*featblob.Decoder, error) {
	return featblob.NewDecoder(blob)
}

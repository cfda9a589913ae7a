package featblob

import (
	"fmt"

	"github.com/arloliu/sparcode/compress"
	"github.com/arloliu/sparcode/errs"
	"github.com/arloliu/sparcode/format"
	"github.com/arloliu/sparcode/internal/options"
	"github.com/arloliu/sparcode/section"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*encoderConfig]

type encoderConfig struct {
	header     *section.FeatureHeader
	indexCodec compress.Codec
	valueCodec compress.Codec
}

func (c *encoderConfig) setIndexCompression(comp format.CompressionType) error {
	codec, err := compress.CreateCodec(comp, "index")
	if err != nil {
		return err
	}
	c.header.Flag.SetIndexCompression(comp)
	c.indexCodec = codec

	return nil
}

func (c *encoderConfig) setValueCompression(comp format.CompressionType) error {
	codec, err := compress.CreateCodec(comp, "value")
	if err != nil {
		return err
	}
	c.header.Flag.SetValueCompression(comp)
	c.valueCodec = codec

	return nil
}

// WithIndexCompression sets the index payload compression. Default is none:
// delta varints of dense outputs are already close to one byte per cell.
func WithIndexCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		return c.setIndexCompression(comp)
	})
}

// WithValueCompression sets the value payload compression. Default is Zstd.
func WithValueCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		return c.setValueCompression(comp)
	})
}

// WithCompression sets both payload compressions.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		if err := c.setIndexCompression(comp); err != nil {
			return err
		}

		return c.setValueCompression(comp)
	})
}

// WithLittleEndian writes the blob in little-endian byte order (the default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.header.Flag.WithLittleEndian()
	})
}

// WithBigEndian writes the blob in big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.header.Flag.WithBigEndian()
	})
}

func checkGeometryFits(size int) error {
	if size < 0 || uint64(size) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: %d cells do not fit a feature blob", errs.ErrInvalidImageSize, size)
	}

	return nil
}

package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/qrsdp/lobreplay/errs"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor maintains
// internal state that benefits from reuse across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Codec compresses and decompresses chunk payloads using LZ4's raw block
// format (not the frame format), exactly as spec §6 requires.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses data using LZ4 block compression. Returns nil for
// empty input.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	return dst[:n], nil
}

// Decompress decompresses data using LZ4 block decompression into a buffer of
// exactly uncompressedSize bytes, the size declared by the chunk header. It
// returns errs.ErrDecompressFailed if LZ4 reports an unexpected output size.
func (LZ4Codec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		return nil, nil
	}

	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompressFailed, err)
	}

	if n != uncompressedSize {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", errs.ErrDecompressFailed, n, uncompressedSize)
	}

	return dst, nil
}

package compress

import "github.com/qrsdp/lobreplay/errs"

// NoOpCodec bypasses compression entirely. It exists for tests and
// benchmarks that want to measure codec overhead in isolation; it is never
// the default for on-disk chunks, which always use LZ4Codec per spec.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a new no-op codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged.
func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged, after checking its length matches
// uncompressedSize.
func (NoOpCodec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) != uncompressedSize {
		return nil, errs.ErrDecompressFailed
	}

	return data, nil
}

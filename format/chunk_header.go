package format

import (
	"github.com/qrsdp/lobreplay/endian"
	"github.com/qrsdp/lobreplay/errs"
)

// ChunkHeader is the fixed 32-byte header preceding each compressed chunk.
//
//	offset  width  field
//	0       4      uncompressed_size (u32, must equal record_count * RecordSize)
//	4       4      compressed_size   (u32, 0 terminates the file cleanly)
//	8       4      record_count      (u32)
//	12      4      flags             (u32)
//	16      8      first_ts          (u64)
//	24      8      last_ts           (u64)
type ChunkHeader struct {
	UncompressedSize uint32
	CompressedSize   uint32
	RecordCount      uint32
	Flags            uint32
	FirstTs          uint64
	LastTs           uint64
}

// IsEndOfStream reports whether this chunk header is the zero-sized sentinel
// that cleanly terminates a file.
func (c ChunkHeader) IsEndOfStream() bool {
	return c.CompressedSize == 0
}

// Parse decodes a ChunkHeader from data, which must be exactly
// ChunkHeaderSize bytes.
func (c *ChunkHeader) Parse(data []byte) error {
	if len(data) != ChunkHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	c.UncompressedSize = engine.Uint32(data[0:4])
	c.CompressedSize = engine.Uint32(data[4:8])
	c.RecordCount = engine.Uint32(data[8:12])
	c.Flags = engine.Uint32(data[12:16])
	c.FirstTs = engine.Uint64(data[16:24])
	c.LastTs = engine.Uint64(data[24:32])

	return nil
}

// Bytes serializes the ChunkHeader into a newly allocated ChunkHeaderSize-byte slice.
func (c ChunkHeader) Bytes() []byte {
	b := make([]byte, ChunkHeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], c.UncompressedSize)
	engine.PutUint32(b[4:8], c.CompressedSize)
	engine.PutUint32(b[8:12], c.RecordCount)
	engine.PutUint32(b[12:16], c.Flags)
	engine.PutUint64(b[16:24], c.FirstTs)
	engine.PutUint64(b[24:32], c.LastTs)

	return b
}

// EndOfStreamChunkHeader returns the zero-sized sentinel chunk header that
// cleanly terminates a file.
func EndOfStreamChunkHeader() ChunkHeader {
	return ChunkHeader{}
}

// ParseChunkHeader parses a ChunkHeader from data (must be exactly ChunkHeaderSize bytes).
func ParseChunkHeader(data []byte) (ChunkHeader, error) {
	var c ChunkHeader
	if err := c.Parse(data); err != nil {
		return ChunkHeader{}, err
	}

	return c, nil
}

// Package compress provides the compression codec used for event-log chunk
// payloads. The wire format (spec §3/§6) pins chunk compression to raw LZ4
// block mode; this package's interfaces mirror the grounding library's
// compress package shape, but only LZ4 and a NoOp codec are wired, since
// swapping the actual on-wire algorithm would break bit-exact
// interoperability with the external generator.
package compress

// Compressor compresses a byte payload.
type Compressor interface {
	// Compress compresses data and returns the result. The input slice is
	// never modified; the result may share its backing array (NoOpCodec
	// returns data itself).
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses data, given the exact uncompressed size declared
	// by the chunk header. It returns errs.ErrDecompressFailed-wrapped errors
	// (via the concrete implementation) if the decompressed size doesn't
	// match uncompressedSize.
	Decompress(data []byte, uncompressedSize int) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

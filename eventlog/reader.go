// Package eventlog implements the Event-Log Codec (spec §4.1): reading the
// file header, lazily iterating chunks as a flattened record stream, reading
// a whole session in one call, and writing sessions chunk by chunk.
package eventlog

import (
	"io"
	"iter"
	"os"

	"github.com/qrsdp/lobreplay/compress"
	"github.com/qrsdp/lobreplay/errs"
	"github.com/qrsdp/lobreplay/format"
)

// ReaderConfig holds reader-side configuration, applied via ReaderOption.
type ReaderConfig struct {
	codec               compress.Codec
	recoverOnTruncation bool
}

// NewReaderConfig creates a ReaderConfig with the documented defaults:
// LZ4Codec and recover_on_truncation enabled.
func NewReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		codec:               compress.NewLZ4Codec(),
		recoverOnTruncation: true,
	}
}

// ReaderOption configures a ReaderConfig.
type ReaderOption func(*ReaderConfig)

// WithRecoverOnTruncation controls whether a short tail read is treated as
// clean EOF (true, the default) or surfaces as errs.ErrTruncated (false).
func WithRecoverOnTruncation(recover bool) ReaderOption {
	return func(c *ReaderConfig) { c.recoverOnTruncation = recover }
}

// WithReaderCodec overrides the codec used to decompress chunk payloads.
// The default, and the only codec that produces spec-conformant files, is
// compress.NewLZ4Codec(); this option exists mainly so tests can exercise
// the iterator against compress.NewNoOpCodec() fixtures.
func WithReaderCodec(codec compress.Codec) ReaderOption {
	return func(c *ReaderConfig) { c.codec = codec }
}

func newReaderConfig(opts ...ReaderOption) *ReaderConfig {
	cfg := NewReaderConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// ReadHeader opens path, reads exactly the 64-byte file header, and returns
// it decoded. Returns errs.ErrTruncated if the file is shorter than
// FileHeaderSize, errs.ErrBadMagic on a magic mismatch, and
// errs.ErrUnsupportedRecordSize if record_size != 26.
func ReadHeader(path string) (format.FileHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return format.FileHeader{}, err
	}
	defer f.Close()

	return readHeader(f)
}

func readHeader(r io.Reader) (format.FileHeader, error) {
	buf := make([]byte, format.FileHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return format.FileHeader{}, errs.ErrTruncated
	}

	return format.ParseFileHeader(buf)
}

// Chunks lazily iterates the records of the session file at path, one chunk
// at a time internally, yielding a flattened (Record, error) sequence. The
// file handle stays open for the lifetime of the iteration and is closed on
// every exit path (normal completion, early break, or panic unwinding out of
// the range loop), per spec §5.
//
// The sequence is finite and not restartable: ranging over it twice reopens
// the file and starts again from the beginning.
func Chunks(path string, opts ...ReaderOption) iter.Seq2[format.Record, error] {
	cfg := newReaderConfig(opts...)

	return func(yield func(format.Record, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(format.Record{}, err)
			return
		}
		defer f.Close()

		if _, err := readHeader(f); err != nil {
			yield(format.Record{}, err)
			return
		}

		for {
			hdrBuf := make([]byte, format.ChunkHeaderSize)
			n, err := io.ReadFull(f, hdrBuf)
			if err != nil {
				if n == 0 || cfg.recoverOnTruncation {
					return
				}
				yield(format.Record{}, errs.ErrTruncated)
				return
			}

			chunkHdr, err := format.ParseChunkHeader(hdrBuf)
			if err != nil {
				yield(format.Record{}, err)
				return
			}

			if chunkHdr.IsEndOfStream() {
				return
			}

			payload := make([]byte, chunkHdr.CompressedSize)
			if _, err := io.ReadFull(f, payload); err != nil {
				if cfg.recoverOnTruncation {
					return
				}
				yield(format.Record{}, errs.ErrTruncated)
				return
			}

			decompressed, err := cfg.codec.Decompress(payload, int(chunkHdr.UncompressedSize))
			if err != nil {
				yield(format.Record{}, err)
				return
			}

			if uint32(len(decompressed)) != chunkHdr.UncompressedSize { //nolint: gosec
				yield(format.Record{}, errs.ErrDecompressFailed)
				return
			}

			records, err := format.ParseRecords(decompressed, int(chunkHdr.RecordCount))
			if err != nil {
				yield(format.Record{}, err)
				return
			}

			for _, rec := range records {
				if !yield(rec, nil) {
					return
				}
			}
		}
	}
}

// ChunkHeaders lazily iterates only the chunk framing metadata of the
// session file at path, skipping decompression entirely. Useful for callers
// that only need to validate first_ts/last_ts monotonicity or inspect
// record counts without paying for decode.
func ChunkHeaders(path string) iter.Seq2[format.ChunkHeader, error] {
	return func(yield func(format.ChunkHeader, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(format.ChunkHeader{}, err)
			return
		}
		defer f.Close()

		if _, err := readHeader(f); err != nil {
			yield(format.ChunkHeader{}, err)
			return
		}

		for {
			hdrBuf := make([]byte, format.ChunkHeaderSize)
			n, err := io.ReadFull(f, hdrBuf)
			if err != nil {
				if n > 0 {
					yield(format.ChunkHeader{}, errs.ErrTruncated)
				}
				return
			}

			chunkHdr, err := format.ParseChunkHeader(hdrBuf)
			if err != nil {
				yield(format.ChunkHeader{}, err)
				return
			}

			if chunkHdr.IsEndOfStream() {
				return
			}

			if !yield(chunkHdr, nil) {
				return
			}

			if _, err := f.Seek(int64(chunkHdr.CompressedSize), io.SeekCurrent); err != nil {
				yield(format.ChunkHeader{}, err)
				return
			}
		}
	}
}

// ReadDay concatenates every chunk's records into a single contiguous slice.
// Returns an empty, non-nil slice for an empty or missing-body file (header
// present, no chunks). read_day is unbounded by design — it holds the whole
// session in memory at once.
func ReadDay(path string, opts ...ReaderOption) ([]format.Record, error) {
	records := make([]format.Record, 0, 4096)
	for rec, err := range Chunks(path, opts...) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

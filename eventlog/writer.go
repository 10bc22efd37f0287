package eventlog

import (
	"io"
	"os"

	"github.com/qrsdp/lobreplay/compress"
	"github.com/qrsdp/lobreplay/errs"
	"github.com/qrsdp/lobreplay/format"
	"github.com/qrsdp/lobreplay/internal/options"
	"github.com/qrsdp/lobreplay/internal/pool"
)

// DefaultChunkCapacity is the default number of records grouped into one
// compressed chunk.
const DefaultChunkCapacity = 4096

// MaxChunkCapacity is the largest chunk_capacity accepted, per spec §6.
const MaxChunkCapacity = 1 << 24

// WriterConfig holds writer-side configuration, applied via WriterOption.
type WriterConfig struct {
	chunkCapacity int
	codec         compress.Codec

	// compressionLevel is reserved for forward compatibility: pierrec/lz4/v4's
	// raw block Compressor has no level parameter (only its frame Writer
	// does, and this format never uses the frame variant), so this field is
	// currently a documented no-op. See SPEC_FULL.md §6.
	compressionLevel int
}

// WriterOption configures a WriterConfig.
type WriterOption = options.Option[*WriterConfig]

// WithChunkCapacity sets the maximum number of records per chunk. Must be in
// [1, MaxChunkCapacity].
func WithChunkCapacity(n int) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if n < 1 || n > MaxChunkCapacity {
			return errs.ErrInvalidChunkCapacity
		}
		c.chunkCapacity = n

		return nil
	})
}

// WithWriterCodec overrides the codec used to compress chunk payloads. The
// default, and the only codec that produces spec-conformant files, is
// compress.NewLZ4Codec().
func WithWriterCodec(codec compress.Codec) WriterOption {
	return options.NoError(func(c *WriterConfig) { c.codec = codec })
}

// WithCompressionLevel sets the reserved compression_level configuration
// field. It currently has no effect on the bytes produced; see WriterConfig.compressionLevel.
func WithCompressionLevel(level int) WriterOption {
	return options.NoError(func(c *WriterConfig) { c.compressionLevel = level })
}

func newWriterConfig(opts ...WriterOption) (*WriterConfig, error) {
	cfg := &WriterConfig{
		chunkCapacity: DefaultChunkCapacity,
		codec:         compress.NewLZ4Codec(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Writer streams events into a .qrsdp session file, grouping them into
// chunks of at most chunk_capacity records and compressing each chunk
// independently. It mirrors the encoder lifecycle of the grounding library
// (StartMetric/AddDataPoint/Finish), adapted to a streaming write since the
// generator appends events one at a time rather than building one in-memory
// blob.
//
// Writer is not safe for concurrent use. After Close, the writer must not be
// reused.
type Writer struct {
	w      io.Writer
	cfg    *WriterConfig
	pend   []format.Record
	closed bool
}

// NewWriter creates a Writer that writes header immediately, then buffers
// events into chunks as WriteEvent is called.
func NewWriter(w io.Writer, header format.FileHeader, opts ...WriterOption) (*Writer, error) {
	cfg, err := newWriterConfig(opts...)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(header.Bytes()); err != nil {
		return nil, err
	}

	return &Writer{
		w:    w,
		cfg:  cfg,
		pend: make([]format.Record, 0, cfg.chunkCapacity),
	}, nil
}

// WriteEvent appends one record to the current pending chunk, flushing it
// automatically once it reaches chunk_capacity records.
func (wr *Writer) WriteEvent(rec format.Record) error {
	if wr.closed {
		return errs.ErrWriterClosed
	}

	wr.pend = append(wr.pend, rec)
	if len(wr.pend) >= wr.cfg.chunkCapacity {
		return wr.flushChunk()
	}

	return nil
}

// Flush writes out the current partial chunk (if any) as a chunk smaller
// than chunk_capacity, without closing the writer. A subsequent WriteEvent
// starts a fresh chunk.
func (wr *Writer) Flush() error {
	if wr.closed {
		return errs.ErrWriterClosed
	}

	return wr.flushChunk()
}

func (wr *Writer) flushChunk() error {
	if len(wr.pend) == 0 {
		return nil
	}

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	buf.Reset()
	buf.ExtendOrGrow(len(wr.pend) * format.RecordSize)
	packed := buf.Bytes()

	for i, rec := range wr.pend {
		rec.WriteTo(packed[i*format.RecordSize : (i+1)*format.RecordSize])
	}

	compressed, err := wr.cfg.codec.Compress(packed)
	if err != nil {
		return err
	}

	hdr := format.ChunkHeader{
		UncompressedSize: uint32(len(packed)),     //nolint: gosec
		CompressedSize:   uint32(len(compressed)), //nolint: gosec
		RecordCount:      uint32(len(wr.pend)),    //nolint: gosec
		FirstTs:          wr.pend[0].TsNs,
		LastTs:           wr.pend[len(wr.pend)-1].TsNs,
	}

	if _, err := wr.w.Write(hdr.Bytes()); err != nil {
		return err
	}
	if _, err := wr.w.Write(compressed); err != nil {
		return err
	}

	wr.pend = wr.pend[:0]

	return nil
}

// Close flushes any pending partial chunk and appends the zero-sized
// sentinel chunk header that cleanly terminates the file. After Close, the
// writer must not be reused.
func (wr *Writer) Close() error {
	if wr.closed {
		return nil
	}

	if err := wr.flushChunk(); err != nil {
		return err
	}

	wr.closed = true

	_, err := wr.w.Write(format.EndOfStreamChunkHeader().Bytes())

	return err
}

// WriteSession is a convenience wrapper that writes header then events to
// the file at path in one call, grouping events into chunks of at most
// chunkCapacity records (DefaultChunkCapacity if chunkCapacity <= 0), and
// always appends the end-of-stream sentinel chunk.
func WriteSession(path string, header format.FileHeader, events []format.Record, chunkCapacity int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var opts []WriterOption
	if chunkCapacity > 0 {
		opts = append(opts, WithChunkCapacity(chunkCapacity))
	}

	w, err := NewWriter(f, header, opts...)
	if err != nil {
		return err
	}

	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			return err
		}
	}

	return w.Close()
}

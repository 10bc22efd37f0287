// Package errs defines the sentinel error values shared across lobreplay's
// packages. Call sites either return these directly or wrap them with
// fmt.Errorf("%w: detail", errs.ErrX, ...) to add context; errors.Is works
// in both cases, matching the pattern used throughout the blob package of
// the grounding library.
package errs

import "errors"

var (
	// ErrTruncated indicates a file or chunk header ended prematurely at the
	// start of a structural unit. When the caller's recover-on-truncation
	// policy is enabled, a short chunk header or chunk payload ends iteration
	// as clean EOF instead, whichever chunk it occurs in; a short file header
	// always returns this error.
	ErrTruncated = errors.New("qrsdp: truncated")

	// ErrBadMagic indicates the file header magic did not match "QRSDPLOG". Fatal.
	ErrBadMagic = errors.New("qrsdp: bad magic")

	// ErrUnsupportedRecordSize indicates record_size != 26. Fatal: readers must
	// refuse rather than misinterpret a record layout they don't understand.
	ErrUnsupportedRecordSize = errors.New("qrsdp: unsupported record size")

	// ErrDecompressFailed indicates LZ4 decompression returned a size other
	// than the chunk header's declared uncompressed_size. Fatal for that file.
	ErrDecompressFailed = errors.New("qrsdp: decompress failed")

	// ErrBadManifest indicates the manifest JSON failed to parse, or neither
	// "sessions" nor "securities" was present. Fatal.
	ErrBadManifest = errors.New("qrsdp: bad manifest")

	// ErrInvariantViolation indicates a book invariant was broken (crossed
	// book, negative depth cast, empty best level after a shift). Must not
	// occur on generator output; failing loudly beats a silently-wrong series.
	ErrInvariantViolation = errors.New("qrsdp: book invariant violation")

	// ErrInvalidHeaderSize indicates a byte slice handed to a header or record
	// Parse method (or ParseRecords) was not exactly the expected fixed size.
	ErrInvalidHeaderSize = errors.New("qrsdp: invalid header size")

	// ErrInvalidChunkCapacity indicates a configured chunk capacity fell
	// outside [1, 1<<24].
	ErrInvalidChunkCapacity = errors.New("qrsdp: invalid chunk capacity")

	// ErrWriterClosed indicates a write was attempted after Close.
	ErrWriterClosed = errors.New("qrsdp: writer closed")
)

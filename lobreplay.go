// Package lobreplay reads and writes qrsdp event-log files and replays them
// into deterministic top-of-book time series.
//
// A qrsdp file is a self-describing binary log of limit-order-book events: a
// fixed 64-byte header followed by a sequence of LZ4-compressed chunks. A
// run directory groups one or more securities' dated session files under a
// manifest.json index.
//
// # Basic usage
//
// Writing a session:
//
//	header := format.FileHeader{P0Ticks: 10000, LevelsPerSide: 10, InitialSpreadTicks: 2, InitialDepth: 50}
//	err := lobreplay.WriteSession("2026-01-02.qrsdp", header, events, 4096)
//
// Reading it back and replaying:
//
//	series, err := lobreplay.ReplaySession("2026-01-02.qrsdp")
//	fmt.Println(series.Mid[len(series.Mid)-1])
//
// Iterating a multi-day, multi-security run:
//
//	m, err := lobreplay.LoadManifest("./run")
//	for res, err := range m.IterDays("2026-01-01", "2026-01-31", "AAPL") {
//	    ...
//	}
//
// This package provides thin top-level wrappers around eventlog, manifest,
// book, and replay for the common cases. For fine-grained control — custom
// codecs, chunk capacities, or streaming consumption — use those packages
// directly.
package lobreplay

import (
	"github.com/qrsdp/lobreplay/book"
	"github.com/qrsdp/lobreplay/eventlog"
	"github.com/qrsdp/lobreplay/format"
	"github.com/qrsdp/lobreplay/manifest"
	"github.com/qrsdp/lobreplay/replay"
)

// ReadHeader reads and decodes a session file's 64-byte header.
func ReadHeader(path string) (format.FileHeader, error) {
	return eventlog.ReadHeader(path)
}

// ReadDay reads and concatenates every chunk of a session file into one
// contiguous slice of records.
func ReadDay(path string, opts ...eventlog.ReaderOption) ([]format.Record, error) {
	return eventlog.ReadDay(path, opts...)
}

// WriteSession writes header then events to path, grouping events into
// chunks of at most chunkCapacity records (eventlog.DefaultChunkCapacity if
// chunkCapacity <= 0).
func WriteSession(path string, header format.FileHeader, events []format.Record, chunkCapacity int) error {
	return eventlog.WriteSession(path, header, events, chunkCapacity)
}

// LoadManifest reads and parses runDir/manifest.json.
func LoadManifest(runDir string) (manifest.Manifest, error) {
	return manifest.Load(runDir)
}

// NewBook constructs a fresh order book from its startup parameters.
func NewBook(p0 int32, levelsPerSide, initialSpread, initialDepth uint32) *book.Book {
	return book.New(p0, levelsPerSide, initialSpread, initialDepth)
}

// Replay constructs a book from header and applies records in order,
// returning the sampled top-of-book series.
func Replay(header format.FileHeader, records []format.Record) (replay.Series, error) {
	return replay.Replay(header, records)
}

// ReplaySession reads the session file at path and replays it end to end,
// streaming records directly into the book without materializing the whole
// file as a record slice first.
func ReplaySession(path string, opts ...eventlog.ReaderOption) (replay.Series, error) {
	return replay.ReplaySession(path, opts...)
}

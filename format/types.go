// Package format defines the fixed-size, little-endian wire structures of the
// .qrsdp event-log format: the file header, the chunk header, and the event
// record itself. Every struct in this package exposes Parse([]byte) and
// Bytes() so callers can round-trip raw bytes without reaching into field
// offsets themselves.
package format

// EventType identifies the kind of event stored in a record.
type EventType uint8

// Event kinds, see spec §4.3.
const (
	EventAddBid      EventType = 0
	EventAddAsk      EventType = 1
	EventCancelBid   EventType = 2
	EventCancelAsk   EventType = 3
	EventExecuteBuy  EventType = 4
	EventExecuteSell EventType = 5
)

func (e EventType) String() string {
	switch e {
	case EventAddBid:
		return "ADD_BID"
	case EventAddAsk:
		return "ADD_ASK"
	case EventCancelBid:
		return "CANCEL_BID"
	case EventCancelAsk:
		return "CANCEL_ASK"
	case EventExecuteBuy:
		return "EXECUTE_BUY"
	case EventExecuteSell:
		return "EXECUTE_SELL"
	default:
		return "UNKNOWN"
	}
}

// Side identifies which side of the book an event pertains to. It is
// redundant with EventType and preserved only for cross-checks; replay never
// branches on it directly.
type Side uint8

const (
	SideBid Side = 0
	SideAsk Side = 1
)

func (s Side) String() string {
	if s == SideAsk {
		return "ask"
	}

	return "bid"
}

// Magic is the 8-byte file header magic identifying a .qrsdp event log.
const Magic = "QRSDPLOG"

// RecordSize is the only record size this implementation understands. A file
// header declaring a different record_size is rejected with
// errs.ErrUnsupportedRecordSize rather than misinterpreted.
const RecordSize = 26

// FileHeaderSize is the fixed size, in bytes, of the file header.
const FileHeaderSize = 64

// ChunkHeaderSize is the fixed size, in bytes, of each chunk header.
const ChunkHeaderSize = 32

package format

import (
	"unsafe"

	"github.com/qrsdp/lobreplay/endian"
	"github.com/qrsdp/lobreplay/errs"
)

// Record is one fixed 26-byte event-log entry.
//
//	offset  width  field
//	0       8      ts_ns        (u64, nanoseconds since session epoch)
//	8       1      type         (u8, EventType)
//	9       1      side         (u8, Side)
//	10      4      price_ticks  (i32)
//	14      4      qty          (u32)
//	18      8      order_id     (u64, opaque, unused by replay)
type Record struct {
	TsNs       uint64
	Type       EventType
	Side       Side
	PriceTicks int32
	Qty        uint32
	OrderID    uint64
}

// Parse decodes a Record from data, which must be exactly RecordSize bytes.
func (r *Record) Parse(data []byte) error {
	if len(data) != RecordSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	r.TsNs = engine.Uint64(data[0:8])
	r.Type = EventType(data[8])
	r.Side = Side(data[9])

	priceUint := engine.Uint32(data[10:14])
	r.PriceTicks = *(*int32)(unsafe.Pointer(&priceUint))

	r.Qty = engine.Uint32(data[14:18])
	r.OrderID = engine.Uint64(data[18:26])

	return nil
}

// Bytes serializes the Record into a newly allocated RecordSize-byte slice.
func (r Record) Bytes() []byte {
	b := make([]byte, RecordSize)
	r.WriteTo(b)

	return b
}

// WriteTo encodes the Record into dst[0:RecordSize]. dst must have at least
// RecordSize bytes available; it panics otherwise, matching the teacher's
// index-entry WriteToSlice style of trusting a pre-sized destination.
func (r Record) WriteTo(dst []byte) {
	engine := endian.GetLittleEndianEngine()

	engine.PutUint64(dst[0:8], r.TsNs)
	dst[8] = uint8(r.Type)
	dst[9] = uint8(r.Side)

	price := r.PriceTicks
	engine.PutUint32(dst[10:14], *(*uint32)(unsafe.Pointer(&price)))

	engine.PutUint32(dst[14:18], r.Qty)
	engine.PutUint64(dst[18:26], r.OrderID)
}

// ParseRecord parses a single Record from data (must be exactly RecordSize bytes).
func ParseRecord(data []byte) (Record, error) {
	var r Record
	if err := r.Parse(data); err != nil {
		return Record{}, err
	}

	return r, nil
}

// ParseRecords reinterprets data as a contiguous sequence of records. len(data)
// must be exactly count*RecordSize; count records are parsed.
func ParseRecords(data []byte, count int) ([]Record, error) {
	if len(data) != count*RecordSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	records := make([]Record, count)
	for i := range records {
		off := i * RecordSize
		if err := records[i].Parse(data[off : off+RecordSize]); err != nil {
			return nil, err
		}
	}

	return records, nil
}

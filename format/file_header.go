package format

import (
	"unsafe"

	"github.com/qrsdp/lobreplay/endian"
	"github.com/qrsdp/lobreplay/errs"
)

// FileHeader is the fixed 64-byte header at the start of every .qrsdp file.
//
//	offset  width  field
//	0       8      magic                 ("QRSDPLOG")
//	8       2      version_major         (u16)
//	10      2      version_minor         (u16)
//	12      4      record_size           (u32, must equal RecordSize)
//	16      8      seed                  (u64)
//	24      4      p0_ticks              (i32)
//	28      4      tick_size             (u32)
//	32      4      session_seconds       (u32)
//	36      4      levels_per_side       (u32)
//	40      4      initial_spread_ticks  (u32)
//	44      4      initial_depth         (u32)
//	48      4      chunk_capacity        (u32)
//	52      4      header_flags          (u32)
//	56      8      trailing              (u64, meaning depends on VersionMinor)
type FileHeader struct {
	VersionMajor       uint16
	VersionMinor       uint16
	RecordSize         uint32
	Seed               uint64
	P0Ticks            int32
	TickSize           uint32
	SessionSeconds     uint32
	LevelsPerSide      uint32
	InitialSpreadTicks uint32
	InitialDepth       uint32
	ChunkCapacity      uint32
	HeaderFlags        uint32

	// Trailing is the raw value of the final 8 bytes of the header. Its
	// meaning is version-dependent: reserved (and conventionally zero) in
	// v1.0, MarketOpenNs in v1.1+. Use MarketOpenNs/SetMarketOpenNs to access
	// it with that interpretation applied.
	Trailing uint64
}

// MarketOpenNs returns the wall-clock nanosecond offset of the market open
// for this session. Only meaningful when VersionMinor >= 1; returns 0 for
// v1.0 headers where the trailing field is reserved.
func (h FileHeader) MarketOpenNs() uint64 {
	if h.VersionMinor < 1 {
		return 0
	}

	return h.Trailing
}

// SetMarketOpenNs sets the trailing field's value. Callers targeting a v1.0
// header should leave it at zero (reserved); this method does not itself
// enforce VersionMinor, since a header's version may be set after this call.
func (h *FileHeader) SetMarketOpenNs(ns uint64) {
	h.Trailing = ns
}

// Parse decodes a FileHeader from data, which must be exactly FileHeaderSize
// bytes. It validates the magic and the record size, returning
// errs.ErrBadMagic or errs.ErrUnsupportedRecordSize respectively before
// returning a usable header.
func (h *FileHeader) Parse(data []byte) error {
	if len(data) != FileHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	if string(data[0:8]) != Magic {
		return errs.ErrBadMagic
	}

	engine := endian.GetLittleEndianEngine()

	h.VersionMajor = engine.Uint16(data[8:10])
	h.VersionMinor = engine.Uint16(data[10:12])
	h.RecordSize = engine.Uint32(data[12:16])

	if h.RecordSize != RecordSize {
		return errs.ErrUnsupportedRecordSize
	}

	h.Seed = engine.Uint64(data[16:24])

	p0Uint := engine.Uint32(data[24:28])
	h.P0Ticks = *(*int32)(unsafe.Pointer(&p0Uint))

	h.TickSize = engine.Uint32(data[28:32])
	h.SessionSeconds = engine.Uint32(data[32:36])
	h.LevelsPerSide = engine.Uint32(data[36:40])
	h.InitialSpreadTicks = engine.Uint32(data[40:44])
	h.InitialDepth = engine.Uint32(data[44:48])
	h.ChunkCapacity = engine.Uint32(data[48:52])
	h.HeaderFlags = engine.Uint32(data[52:56])
	h.Trailing = engine.Uint64(data[56:64])

	return nil
}

// Bytes serializes the FileHeader into a newly allocated FileHeaderSize-byte slice.
func (h FileHeader) Bytes() []byte {
	b := make([]byte, FileHeaderSize)
	engine := endian.GetLittleEndianEngine()

	copy(b[0:8], Magic)
	engine.PutUint16(b[8:10], h.VersionMajor)
	engine.PutUint16(b[10:12], h.VersionMinor)
	engine.PutUint32(b[12:16], RecordSize)
	engine.PutUint64(b[16:24], h.Seed)

	p0 := h.P0Ticks
	engine.PutUint32(b[24:28], *(*uint32)(unsafe.Pointer(&p0)))

	engine.PutUint32(b[28:32], h.TickSize)
	engine.PutUint32(b[32:36], h.SessionSeconds)
	engine.PutUint32(b[36:40], h.LevelsPerSide)
	engine.PutUint32(b[40:44], h.InitialSpreadTicks)
	engine.PutUint32(b[44:48], h.InitialDepth)
	engine.PutUint32(b[48:52], h.ChunkCapacity)
	engine.PutUint32(b[52:56], h.HeaderFlags)
	engine.PutUint64(b[56:64], h.Trailing)

	return b
}

// ParseFileHeader parses a FileHeader from data (must be exactly FileHeaderSize bytes).
func ParseFileHeader(data []byte) (FileHeader, error) {
	var h FileHeader
	if err := h.Parse(data); err != nil {
		return FileHeader{}, err
	}

	return h, nil
}

package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrsdp/lobreplay/errs"
)

func sampleHeader() FileHeader {
	return FileHeader{
		VersionMajor:       1,
		VersionMinor:       1,
		RecordSize:         RecordSize,
		Seed:               42,
		P0Ticks:            10000,
		TickSize:           1,
		SessionSeconds:     23400,
		LevelsPerSide:      5,
		InitialSpreadTicks: 2,
		InitialDepth:       5,
		ChunkCapacity:      4096,
		HeaderFlags:        0,
		Trailing:           1_700_000_000_000,
	}
}

func TestFileHeaderRoundTrip(t *testing.T) {
	h := sampleHeader()
	b := h.Bytes()
	require.Len(t, b, FileHeaderSize)
	require.Equal(t, Magic, string(b[0:8]))

	got, err := ParseFileHeader(b)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestFileHeaderBadMagic(t *testing.T) {
	h := sampleHeader()
	b := h.Bytes()
	copy(b[0:8], "XXXXXXXX")

	_, err := ParseFileHeader(b)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestFileHeaderUnsupportedRecordSize(t *testing.T) {
	h := sampleHeader()
	b := h.Bytes()
	// Overwrite record_size field (bytes 12:16) with a bogus value.
	b[12], b[13], b[14], b[15] = 25, 0, 0, 0

	_, err := ParseFileHeader(b)
	require.Error(t, err)
}

func TestFileHeaderWrongSize(t *testing.T) {
	_, err := ParseFileHeader(make([]byte, FileHeaderSize-1))
	require.Error(t, err)
}

func TestMarketOpenNsVersioning(t *testing.T) {
	v10 := sampleHeader()
	v10.VersionMinor = 0
	require.Equal(t, uint64(0), v10.MarketOpenNs())

	v11 := sampleHeader()
	v11.VersionMinor = 1
	require.Equal(t, v11.Trailing, v11.MarketOpenNs())
}

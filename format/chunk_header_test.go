package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkHeaderRoundTrip(t *testing.T) {
	c := ChunkHeader{
		UncompressedSize: 3 * RecordSize,
		CompressedSize:   40,
		RecordCount:      3,
		Flags:            0,
		FirstTs:          1000,
		LastTs:           3000,
	}

	b := c.Bytes()
	require.Len(t, b, ChunkHeaderSize)

	got, err := ParseChunkHeader(b)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestEndOfStreamChunkHeader(t *testing.T) {
	eof := EndOfStreamChunkHeader()
	require.True(t, eof.IsEndOfStream())

	nonEof := ChunkHeader{CompressedSize: 1}
	require.False(t, nonEof.IsEndOfStream())
}

func TestParseChunkHeaderWrongSize(t *testing.T) {
	_, err := ParseChunkHeader(make([]byte, ChunkHeaderSize-1))
	require.Error(t, err)
}

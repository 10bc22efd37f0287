package lobreplay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrsdp/lobreplay/format"
)

func TestFacadeWriteAndReplaySession(t *testing.T) {
	path := t.TempDir() + "/session.qrsdp"

	header := format.FileHeader{
		VersionMajor:       1,
		VersionMinor:       1,
		P0Ticks:            10_000,
		LevelsPerSide:      5,
		InitialSpreadTicks: 2,
		InitialDepth:       5,
		ChunkCapacity:      4,
	}
	events := []format.Record{
		{TsNs: 1, Type: format.EventAddBid, PriceTicks: 10_000, Qty: 2},
		{TsNs: 2, Type: format.EventExecuteBuy},
	}

	require.NoError(t, WriteSession(path, header, events, 0))

	gotHeader, err := ReadHeader(path)
	require.NoError(t, err)
	require.Equal(t, header.P0Ticks, gotHeader.P0Ticks)

	series, err := ReplaySession(path)
	require.NoError(t, err)
	require.Len(t, series.Ts, len(events))

	b := NewBook(10_000, 5, 2, 5)
	require.NoError(t, b.Apply(format.EventAddBid, 10_000, 2))
	require.Equal(t, int32(10_000), b.BestBid())
}

package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	cases := []Record{
		{TsNs: 0, Type: EventAddBid, Side: SideBid, PriceTicks: 10000, Qty: 5, OrderID: 1},
		{TsNs: 123456789, Type: EventExecuteSell, Side: SideBid, PriceTicks: -42, Qty: 1, OrderID: 0xdeadbeef},
		{TsNs: ^uint64(0), Type: EventCancelAsk, Side: SideAsk, PriceTicks: -2147483648, Qty: ^uint32(0), OrderID: ^uint64(0)},
	}

	for _, rec := range cases {
		b := rec.Bytes()
		require.Len(t, b, RecordSize)

		got, err := ParseRecord(b)
		require.NoError(t, err)
		require.Equal(t, rec, got)
	}
}

func TestParseRecordWrongSize(t *testing.T) {
	_, err := ParseRecord(make([]byte, RecordSize-1))
	require.Error(t, err)
}

func TestParseRecordsConcatenated(t *testing.T) {
	recs := []Record{
		{TsNs: 1, Type: EventAddBid, PriceTicks: 1, Qty: 1},
		{TsNs: 2, Type: EventAddAsk, PriceTicks: 2, Qty: 2},
		{TsNs: 3, Type: EventExecuteBuy, PriceTicks: 3, Qty: 3},
	}

	buf := make([]byte, 0, len(recs)*RecordSize)
	for _, r := range recs {
		buf = append(buf, r.Bytes()...)
	}

	got, err := ParseRecords(buf, len(recs))
	require.NoError(t, err)
	require.Equal(t, recs, got)
}

func TestParseRecordsLengthMismatch(t *testing.T) {
	_, err := ParseRecords(make([]byte, RecordSize), 2)
	require.Error(t, err)
}

func TestEventTypeString(t *testing.T) {
	require.Equal(t, "ADD_BID", EventAddBid.String())
	require.Equal(t, "EXECUTE_SELL", EventExecuteSell.String())
	require.Equal(t, "UNKNOWN", EventType(99).String())
}

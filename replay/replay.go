// Package replay implements the Replay Driver (spec §4.4): it constructs a
// book from a session's file header, applies its records in order, and
// materializes the resulting top-of-book trajectory as parallel series.
package replay

import (
	"github.com/qrsdp/lobreplay/book"
	"github.com/qrsdp/lobreplay/eventlog"
	"github.com/qrsdp/lobreplay/format"
)

// Series holds one sample per applied event, in parallel slices all of the
// same length.
type Series struct {
	Ts          []uint64
	BestBid     []int32
	BestAsk     []int32
	Mid         []float64
	SpreadTicks []int32
}

func newSeries(capacity int) Series {
	return Series{
		Ts:          make([]uint64, 0, capacity),
		BestBid:     make([]int32, 0, capacity),
		BestAsk:     make([]int32, 0, capacity),
		Mid:         make([]float64, 0, capacity),
		SpreadTicks: make([]int32, 0, capacity),
	}
}

func (s *Series) sample(ts uint64, b *book.Book) {
	s.Ts = append(s.Ts, ts)
	s.BestBid = append(s.BestBid, b.BestBid())
	s.BestAsk = append(s.BestAsk, b.BestAsk())
	s.Mid = append(s.Mid, b.Mid())
	s.SpreadTicks = append(s.SpreadTicks, b.SpreadTicks())
}

// Replay constructs a book from header and applies records in order,
// sampling the book's observables after every event. Zero records yields
// empty (non-nil) series.
func Replay(header format.FileHeader, records []format.Record) (Series, error) {
	b := book.NewFromHeader(header)
	series := newSeries(len(records))

	for _, rec := range records {
		if err := b.Apply(rec.Type, rec.PriceTicks, rec.Qty); err != nil {
			return Series{}, err
		}

		series.sample(rec.TsNs, b)
	}

	return series, nil
}

// ReplaySession reads the file header at path, constructs the book from it,
// and streams records directly from eventlog.Chunks into the book without
// materializing the whole session as a []format.Record first.
func ReplaySession(path string, opts ...eventlog.ReaderOption) (Series, error) {
	header, err := eventlog.ReadHeader(path)
	if err != nil {
		return Series{}, err
	}

	b := book.NewFromHeader(header)
	series := newSeries(0)

	for rec, err := range eventlog.Chunks(path, opts...) {
		if err != nil {
			return Series{}, err
		}

		if err := b.Apply(rec.Type, rec.PriceTicks, rec.Qty); err != nil {
			return Series{}, err
		}

		series.sample(rec.TsNs, b)
	}

	return series, nil
}

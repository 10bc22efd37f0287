// Package book implements the Book Replay Engine (spec §4.3): a
// fixed-capacity multi-level order book that applies a stream of events and
// exposes top-of-book observables after each one. Slots live in two plain
// slices indexed by distance from the best level, not a heap of per-order
// objects, so that applying an event never allocates.
package book

import (
	"fmt"

	"github.com/qrsdp/lobreplay/errs"
	"github.com/qrsdp/lobreplay/format"
)

// maxShiftSteps bounds the shift cascade. It is a safety limit against
// corrupted input, not an expected operating depth.
const maxShiftSteps = 64

// Level is one tracked price level: its price and remaining depth.
type Level struct {
	Price int32
	Depth uint32
}

// Book is a fixed-capacity, two-sided order book. bids[0]/asks[0] are always
// the best level on their side; bid prices strictly decrease with index,
// ask prices strictly increase.
type Book struct {
	bids []Level
	asks []Level

	initialDepth uint32
}

// New constructs a Book from the startup parameters of spec §4.3:
//
//	half = initialSpread / 2 (integer division)
//	bestBid = p0 - half; bestAsk = p0 + initialSpread - half
//	bids[k] = {bestBid - k, initialDepth}; asks[k] = {bestAsk + k, initialDepth}
func New(p0 int32, levelsPerSide, initialSpread, initialDepth uint32) *Book {
	half := int32(initialSpread / 2) //nolint: gosec
	bestBid := p0 - half
	bestAsk := p0 + int32(initialSpread) - half //nolint: gosec

	b := &Book{
		bids:         make([]Level, levelsPerSide),
		asks:         make([]Level, levelsPerSide),
		initialDepth: initialDepth,
	}

	for k := uint32(0); k < levelsPerSide; k++ {
		b.bids[k] = Level{Price: bestBid - int32(k), Depth: initialDepth} //nolint: gosec
		b.asks[k] = Level{Price: bestAsk + int32(k), Depth: initialDepth} //nolint: gosec
	}

	return b
}

// NewFromHeader constructs a Book from a decoded file header's startup
// parameters.
func NewFromHeader(h format.FileHeader) *Book {
	return New(h.P0Ticks, h.LevelsPerSide, h.InitialSpreadTicks, h.InitialDepth)
}

// BestBid returns bids[0].Price.
func (b *Book) BestBid() int32 { return b.bids[0].Price }

// BestAsk returns asks[0].Price.
func (b *Book) BestAsk() int32 { return b.asks[0].Price }

// BestBidDepth returns bids[0].Depth.
func (b *Book) BestBidDepth() uint32 { return b.bids[0].Depth }

// BestAskDepth returns asks[0].Depth.
func (b *Book) BestAskDepth() uint32 { return b.asks[0].Depth }

// Mid returns the arithmetic mean of best bid and best ask, as a fraction of
// ticks (not rounded).
func (b *Book) Mid() float64 {
	return float64(b.bids[0].Price+b.asks[0].Price) / 2
}

// SpreadTicks returns best_ask - best_bid.
func (b *Book) SpreadTicks() int32 {
	return b.asks[0].Price - b.bids[0].Price
}

// Bids returns the bid side's level slots, index 0 is best. The returned
// slice must not be mutated by the caller.
func (b *Book) Bids() []Level { return b.bids }

// Asks returns the ask side's level slots, index 0 is best. The returned
// slice must not be mutated by the caller.
func (b *Book) Asks() []Level { return b.asks }

// bidIndex returns the bid slot index for price, or -1 if price falls
// outside the tracked window.
func (b *Book) bidIndex(price int32) int {
	idx := int(b.bids[0].Price - price)
	if idx < 0 || idx >= len(b.bids) {
		return -1
	}

	return idx
}

// askIndex returns the ask slot index for price, or -1 if price falls
// outside the tracked window.
func (b *Book) askIndex(price int32) int {
	idx := int(price - b.asks[0].Price)
	if idx < 0 || idx >= len(b.asks) {
		return -1
	}

	return idx
}

// Apply dispatches one event onto the book per spec §4.3. Out-of-window
// prices are silently ignored, not an error; an unrecognized event type is
// also a no-op, since the format reserves no other values.
func (b *Book) Apply(eventType format.EventType, price int32, qty uint32) error {
	switch eventType {
	case format.EventAddBid:
		b.addBid(price, qty)
	case format.EventAddAsk:
		b.addAsk(price, qty)
	case format.EventCancelBid:
		b.cancelBid(price, qty)
	case format.EventCancelAsk:
		b.cancelAsk(price, qty)
	case format.EventExecuteBuy:
		b.executeBuy()
	case format.EventExecuteSell:
		b.executeSell()
	}

	return nil
}

func (b *Book) addBid(price int32, qty uint32) {
	if b.bids[0].Price < price && price < b.asks[0].Price {
		b.improveBid(price, qty)
		return
	}

	if idx := b.bidIndex(price); idx >= 0 {
		b.bids[idx].Depth += qty
	}
}

func (b *Book) addAsk(price int32, qty uint32) {
	if b.bids[0].Price < price && price < b.asks[0].Price {
		b.improveAsk(price, qty)
		return
	}

	if idx := b.askIndex(price); idx >= 0 {
		b.asks[idx].Depth += qty
	}
}

func (b *Book) improveBid(price int32, qty uint32) {
	for i := len(b.bids) - 1; i > 0; i-- {
		b.bids[i] = b.bids[i-1]
	}
	b.bids[0] = Level{Price: price, Depth: qty}
}

func (b *Book) improveAsk(price int32, qty uint32) {
	for i := len(b.asks) - 1; i > 0; i-- {
		b.asks[i] = b.asks[i-1]
	}
	b.asks[0] = Level{Price: price, Depth: qty}
}

func (b *Book) cancelBid(price int32, qty uint32) {
	idx := b.bidIndex(price)
	if idx < 0 {
		return
	}

	b.bids[idx].Depth = saturatingSub(b.bids[idx].Depth, qty)
	if idx == 0 && b.bids[0].Depth == 0 {
		b.shiftBid()
	}
}

func (b *Book) cancelAsk(price int32, qty uint32) {
	idx := b.askIndex(price)
	if idx < 0 {
		return
	}

	b.asks[idx].Depth = saturatingSub(b.asks[idx].Depth, qty)
	if idx == 0 && b.asks[0].Depth == 0 {
		b.shiftAsk()
	}
}

func (b *Book) executeBuy() {
	if b.asks[0].Depth == 0 {
		return
	}

	b.asks[0].Depth--
	if b.asks[0].Depth == 0 {
		b.shiftAsk()
	}
}

func (b *Book) executeSell() {
	if b.bids[0].Depth == 0 {
		return
	}

	b.bids[0].Depth--
	if b.bids[0].Depth == 0 {
		b.shiftBid()
	}
}

func saturatingSub(depth, qty uint32) uint32 {
	if qty >= depth {
		return 0
	}

	return depth - qty
}

// shiftBid cascades the bid side after the best level empties, per spec
// §4.3's shift rule, bounded at maxShiftSteps.
func (b *Book) shiftBid() {
	for step := 0; step < maxShiftSteps && b.bids[0].Depth == 0; step++ {
		if len(b.bids) == 1 {
			b.bids[0].Price--
			b.bids[0].Depth = b.initialDepth

			return
		}

		for i := 0; i < len(b.bids)-1; i++ {
			b.bids[i] = b.bids[i+1]
		}

		last := len(b.bids) - 1
		b.bids[last] = Level{Price: b.bids[last-1].Price - 1, Depth: b.initialDepth}
	}
}

// shiftAsk cascades the ask side after the best level empties, symmetric to
// shiftBid.
func (b *Book) shiftAsk() {
	for step := 0; step < maxShiftSteps && b.asks[0].Depth == 0; step++ {
		if len(b.asks) == 1 {
			b.asks[0].Price++
			b.asks[0].Depth = b.initialDepth

			return
		}

		for i := 0; i < len(b.asks)-1; i++ {
			b.asks[i] = b.asks[i+1]
		}

		last := len(b.asks) - 1
		b.asks[last] = Level{Price: b.asks[last-1].Price + 1, Depth: b.initialDepth}
	}
}

// Validate checks the §8 property-test invariants: no crossed book, and
// both best levels non-empty. Depths are unsigned, so non-negativity holds
// by construction and is not re-checked here.
func (b *Book) Validate() error {
	if b.bids[0].Price >= b.asks[0].Price {
		return fmt.Errorf("%w: best_bid=%d >= best_ask=%d", errs.ErrInvariantViolation, b.bids[0].Price, b.asks[0].Price)
	}

	if b.bids[0].Depth == 0 {
		return fmt.Errorf("%w: best bid depth is zero", errs.ErrInvariantViolation)
	}

	if b.asks[0].Depth == 0 {
		return fmt.Errorf("%w: best ask depth is zero", errs.ErrInvariantViolation)
	}

	return nil
}

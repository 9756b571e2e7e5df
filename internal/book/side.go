package book

import (
	"container/heap"

	"github.com/tidwall/btree"

	"gleipnir/internal/common"
)

// SideIndex holds one side of the book: the authoritative price -> level map
// plus a lazily invalidated price heap for best-price discovery.
//
// The map is the source of truth. A map entry exists for a price iff its
// level is non-empty; the instant a level drains (full fill or last cancel)
// its entry is erased. The heap is only an index: it may carry duplicates and
// prices that no longer exist in the map. Stale heap entries are discarded
// when, and only when, they surface at the heap top.
type SideIndex struct {
	side   common.Side
	levels *btree.BTreeG[*PriceLevel]
	queue  *priceHeap
}

func NewSideIndex(side common.Side) *SideIndex {
	var levelBefore func(a, b *PriceLevel) bool
	var priceBefore func(a, b float64) bool
	switch side {
	case common.Buy:
		// Sorted greatest first: bids compare with "greater price wins".
		levelBefore = func(a, b *PriceLevel) bool { return a.price > b.price }
		priceBefore = func(a, b float64) bool { return a > b }
	case common.Sell:
		// Sorted least first.
		levelBefore = func(a, b *PriceLevel) bool { return a.price < b.price }
		priceBefore = func(a, b float64) bool { return a < b }
	}
	return &SideIndex{
		side:   side,
		levels: btree.NewBTreeG(levelBefore),
		queue:  newPriceHeap(priceBefore),
	}
}

// Level returns the live level at price, if one exists.
func (s *SideIndex) Level(price float64) (*PriceLevel, bool) {
	return s.levels.GetMut(&PriceLevel{price: price})
}

// GetOrCreate returns the level at price, creating it if absent. Creation
// pushes the price onto the heap, so each empty -> non-empty transition adds
// exactly one heap entry.
func (s *SideIndex) GetOrCreate(price float64) *PriceLevel {
	if level, ok := s.levels.GetMut(&PriceLevel{price: price}); ok {
		return level
	}
	level := NewPriceLevel(price)
	s.levels.Set(level)
	heap.Push(s.queue, price)
	return level
}

// EraseIfEmpty removes the map entry once its level has drained. The heap is
// left alone; any entries it still holds for this price go stale and are
// resolved lazily on later best-price lookups.
func (s *SideIndex) EraseIfEmpty(price float64) {
	probe := &PriceLevel{price: price}
	if level, ok := s.levels.GetMut(probe); ok && level.Empty() {
		s.levels.Delete(probe)
	}
}

// PushPrice re-inserts a price into the heap. Callers of PopBest owe this
// push-back whenever the popped level still carries liquidity, because the
// pop consumed the level's heap entry.
func (s *SideIndex) PushPrice(price float64) {
	heap.Push(s.queue, price)
}

// PeekBest returns the best live price on this side. Stale heap tops (price
// absent from the map, or an empty level) are popped and discarded for good;
// the first valid top is returned without being consumed. The map is never
// modified.
func (s *SideIndex) PeekBest() (float64, bool) {
	for s.queue.Len() > 0 {
		price := s.queue.top()
		if level, ok := s.Level(price); ok && !level.Empty() {
			return price, true
		}
		heap.Pop(s.queue)
	}
	return 0, false
}

// PopBest runs the same stale-discarding scan as PeekBest but consumes the
// valid entry it returns. The caller must PushPrice the price back if the
// level keeps liquidity, or the level becomes undiscoverable.
func (s *SideIndex) PopBest() (float64, bool) {
	for s.queue.Len() > 0 {
		price := heap.Pop(s.queue).(float64)
		if level, ok := s.Level(price); ok && !level.Empty() {
			return price, true
		}
	}
	return 0, false
}

// Quantity is the aggregate resting quantity at price, zero if the level does
// not exist.
func (s *SideIndex) Quantity(price float64) uint64 {
	level, ok := s.Level(price)
	if !ok {
		return 0
	}
	return level.TotalQuantity()
}

// Depth reports up to n levels best-first as (price, aggregate quantity)
// pairs. It scans the map directly, so the answer is exact regardless of how
// stale the heap is.
func (s *SideIndex) Depth(n int) []common.Quote {
	if n <= 0 || s.levels.Len() == 0 {
		return nil
	}
	quotes := make([]common.Quote, 0, min(n, s.levels.Len()))
	s.levels.Scan(func(level *PriceLevel) bool {
		quotes = append(quotes, common.Quote{
			Price:    level.price,
			Quantity: level.TotalQuantity(),
		})
		return len(quotes) < n
	})
	return quotes
}

// Len is the number of live price levels.
func (s *SideIndex) Len() int { return s.levels.Len() }

// Clear drops every level and empties the heap.
func (s *SideIndex) Clear() {
	index := NewSideIndex(s.side)
	s.levels = index.levels
	s.queue = index.queue
}

package book

// priceHeap is a duplicate-tolerant heap of prices. The comparator decides
// orientation: bids use greater-first (max-heap), asks use lesser-first
// (min-heap). It is an index over the level map, not an owner: entries may be
// stale, and callers validate the top against the map before trusting it.
//
// Implements container/heap.Interface.
type priceHeap struct {
	prices []float64
	before func(a, b float64) bool
}

func newPriceHeap(before func(a, b float64) bool) *priceHeap {
	return &priceHeap{before: before}
}

func (h *priceHeap) Len() int { return len(h.prices) }

func (h *priceHeap) Less(i, j int) bool { return h.before(h.prices[i], h.prices[j]) }

func (h *priceHeap) Swap(i, j int) {
	h.prices[i], h.prices[j] = h.prices[j], h.prices[i]
}

func (h *priceHeap) Push(x any) {
	h.prices = append(h.prices, x.(float64))
}

func (h *priceHeap) Pop() any {
	old := h.prices
	n := len(old)
	p := old[n-1]
	h.prices = old[:n-1]
	return p
}

// top returns the best price without popping. Only valid when Len() > 0.
func (h *priceHeap) top() float64 { return h.prices[0] }

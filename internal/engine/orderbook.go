package engine

import (
	"errors"
	"fmt"
	"time"

	"gleipnir/internal/book"
	"gleipnir/internal/common"
)

var ErrDuplicateOrderID = errors.New("order id already exists in the book")

// restingRef is everything needed to cancel a resting order in O(1): which
// side it sits on, at what price, and its node inside that level's FIFO.
type restingRef struct {
	side  common.Side
	price float64
	node  *book.Node
}

// OrderBook is the matching engine for a single instrument. It matches
// incoming orders against resting liquidity under strict price-time priority:
// better prices first, and among equal prices, earlier arrivals first.
//
// One instance serves one instrument and assumes a single writer. No public
// operation locks, suspends, or performs I/O; concurrent use of one instance
// must be prevented by the caller. The standard scaling strategy is one
// OrderBook and one dedicated goroutine per instrument.
type OrderBook struct {
	bids *book.SideIndex
	asks *book.SideIndex

	// resting maps an order id to its cancellation handle. An id is present
	// iff its order currently rests in some price level, so the map doubles
	// as the universe of ids that are in use.
	resting map[uint64]restingRef

	trades []common.Trade
	nextID uint64
}

func New() *OrderBook {
	return &OrderBook{
		bids:    book.NewSideIndex(common.Buy),
		asks:    book.NewSideIndex(common.Sell),
		resting: make(map[uint64]restingRef),
		nextID:  1,
	}
}

// AddLimitOrder submits a limit order. It first matches against the opposite
// side as far as the limit price allows; any remaining quantity rests in the
// book at the limit price. Returns the order's id.
//
// With WithID, the id must not already be resting in the book; the duplicate
// check runs before any state changes, so a rejected call leaves the book
// untouched. Without it, the engine assigns the lowest free id at or above
// its internal cursor.
func (b *OrderBook) AddLimitOrder(
	side common.Side,
	price float64,
	quantity uint64,
	opts ...OrderOption,
) (uint64, error) {
	params := applyOptions(opts)
	id, err := b.claimID(params)
	if err != nil {
		return 0, err
	}

	order := &common.Order{
		ID:        id,
		Side:      side,
		OrderType: common.LimitOrder,
		Price:     price,
		Quantity:  quantity,
		Timestamp: params.timestamp(),
	}

	b.matchIncoming(order)
	if order.Quantity > 0 {
		b.addRestingOrder(order)
	}
	return id, nil
}

// AddMarketOrder submits a market order: it accepts any price and sweeps the
// opposite side until filled or the book runs dry. Leftover quantity is
// discarded; market orders never rest. Returns the order's id.
func (b *OrderBook) AddMarketOrder(
	side common.Side,
	quantity uint64,
	opts ...OrderOption,
) (uint64, error) {
	params := applyOptions(opts)
	id, err := b.claimID(params)
	if err != nil {
		return 0, err
	}

	order := &common.Order{
		ID:        id,
		Side:      side,
		OrderType: common.MarketOrder,
		Quantity:  quantity,
		Timestamp: params.timestamp(),
	}

	b.matchIncoming(order)
	return id, nil
}

// CancelOrder removes the resting order with the given id. Returns false if
// no such order rests in the book; cancelling an unknown, already filled, or
// already cancelled id is not an error.
func (b *OrderBook) CancelOrder(id uint64) bool {
	ref, ok := b.resting[id]
	if !ok {
		return false
	}

	index := b.sideIndex(ref.side)
	level, ok := index.Level(ref.price)
	if !ok {
		return false
	}

	level.Remove(ref.node)
	index.EraseIfEmpty(ref.price)
	delete(b.resting, id)
	return true
}

// BestBid returns the highest bid price and its aggregate resting quantity.
// The second return is false when the bid side is empty.
func (b *OrderBook) BestBid() (common.Quote, bool) {
	return bestQuote(b.bids)
}

// BestAsk returns the lowest ask price and its aggregate resting quantity.
// The second return is false when the ask side is empty.
func (b *OrderBook) BestAsk() (common.Quote, bool) {
	return bestQuote(b.asks)
}

func bestQuote(index *book.SideIndex) (common.Quote, bool) {
	price, ok := index.PeekBest()
	if !ok {
		return common.Quote{}, false
	}
	return common.Quote{Price: price, Quantity: index.Quantity(price)}, true
}

// Depth reports up to levels price levels on side, best-first: descending
// prices for bids, ascending for asks. Zero levels or an empty side yields an
// empty result.
func (b *OrderBook) Depth(side common.Side, levels int) []common.Quote {
	return b.sideIndex(side).Depth(levels)
}

// Trades is a read view of the execution log, oldest first. Callers must not
// modify the returned slice.
func (b *OrderBook) Trades() []common.Trade {
	return b.trades
}

// Clear resets the book to its initial state: both sides emptied, the
// resting-order registry and trade log dropped, and the id cursor rewound.
func (b *OrderBook) Clear() {
	b.bids.Clear()
	b.asks.Clear()
	b.resting = make(map[uint64]restingRef)
	b.trades = nil
	b.nextID = 1
}

// ---- Internal helpers ------------------------------------------------------

func (b *OrderBook) sideIndex(side common.Side) *book.SideIndex {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) claimID(params orderParams) (uint64, error) {
	if params.hasID {
		if _, ok := b.resting[params.id]; ok {
			return 0, fmt.Errorf("%w: %d", ErrDuplicateOrderID, params.id)
		}
		return params.id, nil
	}
	return b.nextFreeID(), nil
}

// nextFreeID allocates the lowest free id at or above the cursor, skipping
// ids claimed explicitly by callers. The scan resumes from where it last
// stopped; it degrades if callers densely pre-assign explicit ids.
func (b *OrderBook) nextFreeID() uint64 {
	for {
		if _, ok := b.resting[b.nextID]; !ok {
			break
		}
		b.nextID++
	}
	id := b.nextID
	b.nextID++
	return id
}

// matchIncoming sweeps the opposite side from the best price outward while
// the incoming order keeps quantity and the candidate prices stay acceptable.
// Each accepted level drains FIFO from the head; fully filled resting orders
// are unlinked and deregistered as they go.
func (b *OrderBook) matchIncoming(incoming *common.Order) {
	opposite := b.sideIndex(incoming.Side.Opposite())

	for incoming.Quantity > 0 {
		price, ok := opposite.PopBest()
		if !ok {
			// No liquidity left on the other side.
			break
		}

		if !acceptable(incoming, price) {
			// The price is still valid for future orders; the pop consumed
			// its heap entry, so put it back before giving up.
			opposite.PushPrice(price)
			break
		}

		level, ok := opposite.Level(price)
		if !ok || level.Empty() {
			continue
		}

		for !level.Empty() && incoming.Quantity > 0 {
			resting := level.Front().Order

			fill := min(incoming.Quantity, resting.Quantity)
			b.recordTrade(incoming, resting, price, fill)
			incoming.Quantity -= fill
			resting.Quantity -= fill

			if resting.Quantity == 0 {
				level.Remove(level.Front())
				delete(b.resting, resting.ID)
			}
		}

		if level.Empty() {
			opposite.EraseIfEmpty(price)
		} else {
			// Still liquidity at this price; keep it discoverable.
			opposite.PushPrice(price)
		}
	}
}

// acceptable reports whether the incoming order may trade at price. Market
// orders accept anything; a limit buy accepts prices at or below its limit, a
// limit sell prices at or above.
func acceptable(incoming *common.Order, price float64) bool {
	if incoming.OrderType == common.MarketOrder {
		return true
	}
	if incoming.Side == common.Buy {
		return price <= incoming.Price
	}
	return price >= incoming.Price
}

// addRestingOrder places a limit order with leftover quantity into its own
// side's book and registers it for cancellation.
func (b *OrderBook) addRestingOrder(order *common.Order) {
	if order.OrderType != common.LimitOrder {
		// Unreachable from the public entry points; a priceless resting
		// order means an engine bug, not bad input.
		panic("engine: resting market orders are not supported")
	}

	level := b.sideIndex(order.Side).GetOrCreate(order.Price)
	node := level.Append(order)
	b.resting[order.ID] = restingRef{
		side:  order.Side,
		price: order.Price,
		node:  node,
	}
}

// recordTrade appends one execution. The buy and sell ids come from whichever
// of the two orders actually buys and sells; submission order is irrelevant.
func (b *OrderBook) recordTrade(incoming, resting *common.Order, price float64, quantity uint64) {
	buyID := resting.ID
	sellID := incoming.ID
	if incoming.Side == common.Buy {
		buyID = incoming.ID
		sellID = resting.ID
	}

	b.trades = append(b.trades, common.Trade{
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Price:       price,
		Quantity:    quantity,
		Timestamp:   time.Now(),
	})
}

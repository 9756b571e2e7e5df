package common

type Side int

const (
	Buy Side = iota
	Sell
)

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

type OrderType int

const (
	// Limit orders are an order to buy or sell at a specified price or
	// better. Limit orders may rest on the order book until filled.
	LimitOrder OrderType = iota
	// Market orders are instructions to buy or sell immediately at the
	// best available price. Any quantity the book cannot satisfy is
	// discarded; market orders never rest.
	MarketOrder
)

func (t OrderType) String() string {
	if t == LimitOrder {
		return "LIMIT"
	}
	return "MARKET"
}

// Quote is a per-price view of one side of the book: the price level and the
// aggregate resting quantity at that price.
type Quote struct {
	Price    float64
	Quantity uint64
}

package common

import (
	"fmt"
	"time"
)

// Order is a live order record. Quantity is the remaining quantity and only
// ever decreases as the order fills; the engine removes the order once it
// reaches zero. Price is meaningful for limit orders only.
type Order struct {
	ID        uint64    // Book-unique order identifier
	Side      Side      // Order side
	OrderType OrderType // Limit or market
	Price     float64   // Limit price (ignored for market orders)
	Quantity  uint64    // Remaining quantity
	Timestamp time.Time // Time of arrival, record-keeping only
}

func (order Order) String() string {
	return fmt.Sprintf(
		`ID:        %d
Side:      %v
OrderType: %v
Price:     %f
Quantity:  %d
Timestamp: %v`,
		order.ID,
		order.Side,
		order.OrderType,
		order.Price,
		order.Quantity,
		order.Timestamp.Format(time.RFC3339Nano),
	)
}

package common

import (
	"fmt"
	"time"
)

// Trade is one execution between a buyer and a seller. Price is always the
// resting order's price, so the aggressor keeps any price improvement.
// Immutable once recorded.
type Trade struct {
	BuyOrderID  uint64
	SellOrderID uint64
	Price       float64
	Quantity    uint64
	Timestamp   time.Time
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"Trade{buy=%d, sell=%d, price=%g, qty=%d, ts=%v}",
		t.BuyOrderID,
		t.SellOrderID,
		t.Price,
		t.Quantity,
		t.Timestamp.Format(time.RFC3339Nano),
	)
}

package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gleipnir/internal/common"
)

func newOrder(id uint64, qty uint64) *common.Order {
	return &common.Order{
		ID:        id,
		Side:      common.Buy,
		OrderType: common.LimitOrder,
		Price:     100.0,
		Quantity:  qty,
	}
}

func levelIDs(level *PriceLevel) []uint64 {
	var ids []uint64
	for node := level.Front(); node != nil; node = node.next {
		ids = append(ids, node.Order.ID)
	}
	return ids
}

func TestPriceLevel_AppendPreservesArrivalOrder(t *testing.T) {
	level := NewPriceLevel(100.0)

	level.Append(newOrder(1, 10))
	level.Append(newOrder(2, 20))
	level.Append(newOrder(3, 30))

	assert.Equal(t, []uint64{1, 2, 3}, levelIDs(level))
	assert.Equal(t, uint64(60), level.TotalQuantity())
	assert.False(t, level.Empty())
}

func TestPriceLevel_RemoveHeadMiddleTail(t *testing.T) {
	level := NewPriceLevel(100.0)
	nodes := []*Node{
		level.Append(newOrder(1, 10)),
		level.Append(newOrder(2, 20)),
		level.Append(newOrder(3, 30)),
		level.Append(newOrder(4, 40)),
	}

	// Middle.
	level.Remove(nodes[1])
	assert.Equal(t, []uint64{1, 3, 4}, levelIDs(level))

	// Head.
	level.Remove(nodes[0])
	assert.Equal(t, []uint64{3, 4}, levelIDs(level))
	assert.Equal(t, uint64(3), level.Front().Order.ID)

	// Tail.
	level.Remove(nodes[3])
	assert.Equal(t, []uint64{3}, levelIDs(level))
	assert.Equal(t, uint64(30), level.TotalQuantity())

	// Last remaining node empties the level.
	level.Remove(nodes[2])
	assert.True(t, level.Empty())
	assert.Nil(t, level.Front())
	assert.Equal(t, uint64(0), level.TotalQuantity())
}

func TestPriceLevel_AppendAfterDrainRestartsQueue(t *testing.T) {
	level := NewPriceLevel(100.0)
	n := level.Append(newOrder(1, 10))
	level.Remove(n)

	level.Append(newOrder(2, 20))
	assert.Equal(t, []uint64{2}, levelIDs(level))
	assert.Equal(t, uint64(20), level.TotalQuantity())
}

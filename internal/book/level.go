package book

import "gleipnir/internal/common"

// Node links one resting order into its price level's FIFO. The node itself
// is the cancellation handle: holding it allows an O(1) unlink without
// scanning the level.
type Node struct {
	Order *common.Order

	prev *Node
	next *Node
}

// PriceLevel is the FIFO queue of resting orders sharing one price. Node
// order is strictly arrival order, earliest at the head. The level knows
// nothing about price priority; it only preserves insertion order.
type PriceLevel struct {
	price float64
	head  *Node
	tail  *Node
}

func NewPriceLevel(price float64) *PriceLevel {
	return &PriceLevel{price: price}
}

func (l *PriceLevel) Price() float64 { return l.price }

// Append inserts the order at the tail and returns its node handle.
func (l *PriceLevel) Append(order *common.Order) *Node {
	node := &Node{Order: order}
	if l.tail == nil {
		l.head = node
		l.tail = node
	} else {
		l.tail.next = node
		node.prev = l.tail
		l.tail = node
	}
	return node
}

// Remove unlinks the node from the queue, patching head/tail if the node was
// an endpoint. The node must belong to this level.
func (l *PriceLevel) Remove(node *Node) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}

func (l *PriceLevel) Front() *Node { return l.head }

func (l *PriceLevel) Empty() bool { return l.head == nil }

// TotalQuantity sums the remaining quantity across the level, head to tail.
// Computed on demand rather than cached.
func (l *PriceLevel) TotalQuantity() uint64 {
	var total uint64
	for node := l.head; node != nil; node = node.next {
		total += node.Order.Quantity
	}
	return total
}

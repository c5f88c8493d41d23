package ordercache

// Cache is the external contract every matcher depends on (spec §4.5):
// borrowed storage of all live orders keyed by order id, plus a
// monotonic trade-id counter shared across every matcher instance that
// draws from the same cache.
//
// C++: original_source/src/roq/algo/matcher/simple.hpp takes a
// "cache" reference and calls cache.get_order(order_id, ...) /
// cache.next_trade_id().
type Cache interface {
	// GetOrder invokes visitor with a mutable reference to the live
	// order and reports whether it existed. visitor is never called
	// when the order is unknown.
	GetOrder(orderID uint64, visitor func(*Order)) bool

	// PutOrder inserts a freshly created order under its OrderID,
	// rejecting (returning false) if that id is already in use.
	PutOrder(o *Order) bool

	// DeleteOrder drops the order from storage once it reaches a
	// terminal state; callers are not required to call this, it is a
	// memory-management convenience, not part of the matching contract.
	DeleteOrder(orderID uint64)

	// NextTradeID returns a strictly increasing id for the next fill,
	// per spec §4.2 "Fill semantics (Simple)".
	NextTradeID() uint64

	// Orders returns every currently stored order, in no particular
	// order. The matchers' cancel-all sweeps walk their own resting
	// indices instead.
	Orders() []*Order

	// Reissue bumps an order's insertion-order tiebreaker, modelling a
	// modify's loss-of-priority (spec §4.2 "Modify order").
	Reissue(o *Order)
}

// MemoryCache is the in-process Cache implementation used by the
// backtest matcher (and adequate for a single-threaded live gateway,
// per spec §5 "Single-threaded, cooperative").
type MemoryCache struct {
	orders      map[uint64]*Order
	nextTradeID uint64
	nextSeq     uint64
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{orders: make(map[uint64]*Order)}
}

func (c *MemoryCache) GetOrder(orderID uint64, visitor func(*Order)) bool {
	o, ok := c.orders[orderID]
	if !ok {
		return false
	}
	visitor(o)
	return true
}

func (c *MemoryCache) PutOrder(o *Order) bool {
	if _, exists := c.orders[o.OrderID]; exists {
		return false
	}
	c.nextSeq++
	o.sequence = c.nextSeq
	c.orders[o.OrderID] = o
	return true
}

func (c *MemoryCache) DeleteOrder(orderID uint64) {
	delete(c.orders, orderID)
}

func (c *MemoryCache) NextTradeID() uint64 {
	c.nextTradeID++
	return c.nextTradeID
}

func (c *MemoryCache) Orders() []*Order {
	out := make([]*Order, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, o)
	}
	return out
}

// Reissue bumps an order's insertion-order tiebreaker, modelling a
// modify's loss-of-priority (spec §4.2 "Modify order").
func (c *MemoryCache) Reissue(o *Order) {
	c.nextSeq++
	o.sequence = c.nextSeq
}

package matcher

import (
	"sort"

	"github.com/quantlink/algo/pkg/ordercache"
)

// restingIndex is the sorted resting-order sequence for one side of
// the book (spec §3 "Resting-order index (Simple)"). buy indices sort
// descending price then ascending sequence; sell indices sort
// ascending price then ascending sequence. The head is always the
// best-priority resting order.
type restingIndex struct {
	orders []*ordercache.Order
	isBuy  bool
}

func newRestingIndex(isBuy bool) *restingIndex {
	return &restingIndex{isBuy: isBuy}
}

func (idx *restingIndex) less(a, b *ordercache.Order) bool {
	if a.Price != b.Price {
		if idx.isBuy {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	}
	return a.Sequence() < b.Sequence()
}

// Insert adds o in sorted position.
func (idx *restingIndex) Insert(o *ordercache.Order) {
	i := sort.Search(len(idx.orders), func(i int) bool {
		return idx.less(o, idx.orders[i])
	})
	idx.orders = append(idx.orders, nil)
	copy(idx.orders[i+1:], idx.orders[i:])
	idx.orders[i] = o
}

// Remove drops the order with the given id, if present.
func (idx *restingIndex) Remove(orderID uint64) {
	for i, o := range idx.orders {
		if o.OrderID == orderID {
			idx.orders = append(idx.orders[:i], idx.orders[i+1:]...)
			return
		}
	}
}

// Head returns the best-priority resting order, or nil if empty.
func (idx *restingIndex) Head() *ordercache.Order {
	if len(idx.orders) == 0 {
		return nil
	}
	return idx.orders[0]
}

// PopHead removes and returns the best-priority resting order.
func (idx *restingIndex) PopHead() *ordercache.Order {
	if len(idx.orders) == 0 {
		return nil
	}
	o := idx.orders[0]
	idx.orders = idx.orders[1:]
	return o
}

// AtPrice returns every order resting at the given price, in priority
// order, without removing them.
func (idx *restingIndex) AtPrice(price float64) []*ordercache.Order {
	var out []*ordercache.Order
	for _, o := range idx.orders {
		if o.Price == price {
			out = append(out, o)
		}
	}
	return out
}

// All returns every resting order belonging to account (or every
// order, when account == ""), matching the optional orderIDs filter,
// in no particular order. Used by cancel-all sweeps (spec §4.2
// "Cancel-all").
func (idx *restingIndex) All(account string, orderIDs []uint64) []*ordercache.Order {
	var out []*ordercache.Order
	for _, o := range idx.orders {
		if account != "" && o.Account != account {
			continue
		}
		if len(orderIDs) > 0 && !containsID(orderIDs, o.OrderID) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func containsID(ids []uint64, id uint64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

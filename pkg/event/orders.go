package event

// OrderStatus is the lifecycle state of a matcher-side order.
//
// C++: roq::OrderStatus (subset relevant to the matcher)
type OrderStatus int8

const (
	OrderStatusUndefined OrderStatus = iota
	OrderStatusSent
	OrderStatusWorking
	OrderStatusCompleted
	OrderStatusCanceled
	OrderStatusRejected
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusSent:
		return "SENT"
	case OrderStatusWorking:
		return "WORKING"
	case OrderStatusCompleted:
		return "COMPLETED"
	case OrderStatusCanceled:
		return "CANCELED"
	case OrderStatusRejected:
		return "REJECTED"
	default:
		return "UNDEFINED"
	}
}

// IsTerminal reports whether no further mutation of the order is
// permitted once it reaches this status (spec §3 invariants).
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusCanceled, OrderStatusRejected:
		return true
	default:
		return false
	}
}

// RequestStatus is carried on an OrderAck.
type RequestStatus int8

const (
	RequestStatusUndefined RequestStatus = iota
	RequestStatusAccepted
	RequestStatusRejected
)

// Error is the rejection reason surfaced on an OrderAck, per spec §7.
type Error int8

const (
	ErrorNone Error = iota
	ErrorInvalidRequest
	ErrorUnknownSymbol
	ErrorInvalidPrice
	ErrorInvalidQuantity
	ErrorNotFound
	ErrorNotSupported
)

func (e Error) String() string {
	switch e {
	case ErrorInvalidRequest:
		return "INVALID_REQUEST"
	case ErrorUnknownSymbol:
		return "UNKNOWN_SYMBOL"
	case ErrorInvalidPrice:
		return "INVALID_PRICE"
	case ErrorInvalidQuantity:
		return "INVALID_QUANTITY"
	case ErrorNotFound:
		return "NOT_FOUND"
	case ErrorNotSupported:
		return "NOT_SUPPORTED"
	default:
		return "NONE"
	}
}

// CreateOrder is a request to create a new limit order.
type CreateOrder struct {
	OrderID         uint64
	Account         string
	Exchange        string
	Symbol          string
	Side            Side
	Price           float64
	Quantity        float64
	TimeInForce     string
	PositionEffect  string
	MarginMode      string
}

// ModifyOrder is a request to reprice/resize a live order.
type ModifyOrder struct {
	OrderID     uint64
	Price       float64
	Quantity    float64
	RequestVersion uint32
}

// CancelOrder is a request to cancel a single live order.
type CancelOrder struct {
	OrderID uint64
}

// CancelAllOrders cancels every resting order matching the filter.
// OrderIDs, when non-empty, restricts the sweep to those ids.
//
// original_source/src/roq/algo/matcher/simple.hpp names
// Event<CancelAllOrders> on the matcher interface; the account/order-id
// filter is carried through per SPEC_FULL.md §12.
type CancelAllOrders struct {
	Account  string
	OrderIDs []uint64
}

// MassQuote and CancelQuotes are declared on the matcher interface by
// original_source/include/roq/algo/matcher.hpp but are out of scope for
// Simple/QueuePositionSimple; see SPEC_FULL.md §12.
type MassQuote struct {
	Account string
}

type CancelQuotes struct {
	Account string
}

// OrderAck is emitted once per inbound request.
type OrderAck struct {
	OrderID       uint64
	RequestStatus RequestStatus
	Error         Error
	// Status mirrors the order's lifecycle status at ack time: a
	// rejected create ack carries OrderStatusRejected, everything else
	// carries the order's prevailing status.
	Status OrderStatus
}

// OrderUpdate is emitted on any mutation of a cached order's state.
type OrderUpdate struct {
	OrderID           uint64
	Account           string
	Exchange          string
	Symbol            string
	Side              Side
	Quantity          float64
	RemainingQuantity float64
	TradedQuantity    float64
	TotalCost         float64
	Status            OrderStatus
	MaxRequestVersion uint32
}

// Fill describes a single trade execution against a resting or
// aggressive order.
type Fill struct {
	Price    float64
	Quantity float64
	TradeID  uint64
}

// TradeUpdate is emitted once per Fill.
type TradeUpdate struct {
	OrderID uint64
	Fill    Fill
}

// CancelAllOrdersAck is emitted once after a cancel-all sweep
// completes, carrying the number of orders canceled.
type CancelAllOrdersAck struct {
	Count int
}

package models

type SubOrderStatus string

const (
	SubOrderPending    SubOrderStatus = "pending"
	SubOrderProcessing SubOrderStatus = "processing"
	SubOrderShipped    SubOrderStatus = "shipped"
	SubOrderDelivered  SubOrderStatus = "delivered"
	SubOrderCancelled  SubOrderStatus = "cancelled"
)

type OrderStatus string

const (
	OrderPending            OrderStatus = "pending"
	OrderProcessing         OrderStatus = "processing"
	OrderShipped            OrderStatus = "shipped"
	OrderPartiallyCancelled OrderStatus = "partially_cancelled"
	OrderPartiallyFulfilled OrderStatus = "partially_fulfilled"
	OrderCompleted          OrderStatus = "completed"
	OrderCancelled          OrderStatus = "cancelled"
)

// subOrderTransitions is the explicit transition table for the fulfillment
// lifecycle. Terminal states have no outgoing edges.
var subOrderTransitions = map[SubOrderStatus][]SubOrderStatus{
	SubOrderPending:    {SubOrderProcessing, SubOrderCancelled},
	SubOrderProcessing: {SubOrderShipped, SubOrderCancelled},
	SubOrderShipped:    {SubOrderDelivered},
	SubOrderDelivered:  {},
	SubOrderCancelled:  {},
}

// ValidSubOrderStatus reports whether s is a known lifecycle state.
func ValidSubOrderStatus(s SubOrderStatus) bool {
	_, ok := subOrderTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to SubOrderStatus) bool {
	for _, next := range subOrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a sub-order can no longer change state.
func IsTerminal(s SubOrderStatus) bool {
	return s == SubOrderDelivered || s == SubOrderCancelled
}

// ProjectOrderStatus derives the parent order status from its sub-order
// states. A mix of delivered and cancelled fragments is reported as
// partially fulfilled, never collapsed into completed.
func ProjectOrderStatus(statuses []SubOrderStatus) OrderStatus {
	if len(statuses) == 0 {
		return OrderPending
	}

	var delivered, cancelled, shipped, processing int
	for _, s := range statuses {
		switch s {
		case SubOrderDelivered:
			delivered++
		case SubOrderCancelled:
			cancelled++
		case SubOrderShipped:
			shipped++
		case SubOrderProcessing:
			processing++
		}
	}

	total := len(statuses)
	switch {
	case delivered == total:
		return OrderCompleted
	case cancelled == total:
		return OrderCancelled
	case delivered+cancelled == total:
		return OrderPartiallyFulfilled
	case cancelled > 0:
		return OrderPartiallyCancelled
	case shipped > 0:
		return OrderShipped
	case processing > 0:
		return OrderProcessing
	default:
		return OrderPending
	}
}

package models

// OrderStatus is the single status vocabulary for orders. Every surface
// (customer history, owner dashboard, rider views, admin console) consumes
// this one enumeration instead of keeping its own string set.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// DeliveryStatus is the status vocabulary for a rider's assignment. It only
// becomes meaningful once an order has been confirmed and a delivery row
// exists; before that the order is simply awaiting pickup.
type DeliveryStatus string

const (
	DeliveryUnassigned DeliveryStatus = "unassigned"
	DeliveryPicked     DeliveryStatus = "picked"
	DeliveryInTransit  DeliveryStatus = "in_transit"
	DeliveryDelivered  DeliveryStatus = "delivered"
)

// orderTransitions is the full set of legal order moves. Orders only ever
// move forward through the chain, with cancellation reachable from any
// state before the food leaves the restaurant.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderConfirmed, OrderCancelled},
	OrderConfirmed:      {OrderPreparing, OrderCancelled},
	OrderPreparing:      {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered},
	OrderDelivered:      {},
	OrderCancelled:      {},
}

// deliveryTransitions is strictly sequential: no skipping a stage.
var deliveryTransitions = map[DeliveryStatus]DeliveryStatus{
	DeliveryUnassigned: DeliveryPicked,
	DeliveryPicked:     DeliveryInTransit,
	DeliveryInTransit:  DeliveryDelivered,
}

// ValidOrderStatus reports whether s is a known order status value.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidDeliveryStatus reports whether s is a known delivery status value.
func ValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryUnassigned, DeliveryPicked, DeliveryInTransit, DeliveryDelivered:
		return true
	}
	return false
}

// CanOrderTransition reports whether an order may move from one status to
// another. A same-status "transition" is not listed here on purpose; callers
// treat it as an idempotent no-op before consulting this table.
func CanOrderTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanDeliveryTransition reports whether a delivery may move from one status
// to the next. Only the immediate successor is legal.
func CanDeliveryTransition(from, to DeliveryStatus) bool {
	return deliveryTransitions[from] == to
}

// Terminal reports whether an order status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// PresentedStatus resolves the single customer-facing status for an order.
// When a delivery row exists and the rider has started moving, the delivery
// status wins; otherwise the order's own status is shown, with a pending
// order presented as awaiting pickup. This is the one place the two status
// fields are reconciled.
func PresentedStatus(order *Order, delivery *Delivery) string {
	if delivery != nil && delivery.Status != DeliveryUnassigned {
		return string(delivery.Status)
	}
	if order.Status == OrderPending {
		return "awaiting_pickup"
	}
	return string(order.Status)
}

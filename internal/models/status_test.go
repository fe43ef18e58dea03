package models_test

import (
	"testing"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions_ForwardChain(t *testing.T) {
	assert.True(t, models.CanOrderTransition(models.OrderPending, models.OrderConfirmed))
	assert.True(t, models.CanOrderTransition(models.OrderConfirmed, models.OrderPreparing))
	assert.True(t, models.CanOrderTransition(models.OrderPreparing, models.OrderOutForDelivery))
	assert.True(t, models.CanOrderTransition(models.OrderOutForDelivery, models.OrderDelivered))
}

func TestOrderTransitions_NoSkippingOrRewinding(t *testing.T) {
	// Skipping ahead
	assert.False(t, models.CanOrderTransition(models.OrderPending, models.OrderPreparing))
	assert.False(t, models.CanOrderTransition(models.OrderPending, models.OrderDelivered))
	assert.False(t, models.CanOrderTransition(models.OrderConfirmed, models.OrderOutForDelivery))

	// Moving backwards
	assert.False(t, models.CanOrderTransition(models.OrderConfirmed, models.OrderPending))
	assert.False(t, models.CanOrderTransition(models.OrderOutForDelivery, models.OrderPreparing))
}

func TestOrderTransitions_Cancellation(t *testing.T) {
	// Cancellable until the food leaves the restaurant
	assert.True(t, models.CanOrderTransition(models.OrderPending, models.OrderCancelled))
	assert.True(t, models.CanOrderTransition(models.OrderConfirmed, models.OrderCancelled))
	assert.True(t, models.CanOrderTransition(models.OrderPreparing, models.OrderCancelled))

	// Not once it is out the door or done
	assert.False(t, models.CanOrderTransition(models.OrderOutForDelivery, models.OrderCancelled))
	assert.False(t, models.CanOrderTransition(models.OrderDelivered, models.OrderCancelled))
}

func TestOrderTransitions_TerminalStatesAreDeadEnds(t *testing.T) {
	assert.True(t, models.OrderDelivered.Terminal())
	assert.True(t, models.OrderCancelled.Terminal())
	assert.False(t, models.OrderPending.Terminal())

	for _, target := range []models.OrderStatus{
		models.OrderPending, models.OrderConfirmed, models.OrderPreparing,
		models.OrderOutForDelivery, models.OrderDelivered, models.OrderCancelled,
	} {
		assert.False(t, models.CanOrderTransition(models.OrderDelivered, target),
			"delivered order must not move to %s", target)
		assert.False(t, models.CanOrderTransition(models.OrderCancelled, target),
			"cancelled order must not move to %s", target)
	}
}

func TestDeliveryTransitions_StrictlySequential(t *testing.T) {
	assert.True(t, models.CanDeliveryTransition(models.DeliveryUnassigned, models.DeliveryPicked))
	assert.True(t, models.CanDeliveryTransition(models.DeliveryPicked, models.DeliveryInTransit))
	assert.True(t, models.CanDeliveryTransition(models.DeliveryInTransit, models.DeliveryDelivered))

	// No skipping a stage
	assert.False(t, models.CanDeliveryTransition(models.DeliveryUnassigned, models.DeliveryInTransit))
	assert.False(t, models.CanDeliveryTransition(models.DeliveryUnassigned, models.DeliveryDelivered))
	assert.False(t, models.CanDeliveryTransition(models.DeliveryPicked, models.DeliveryDelivered))

	// No moving backwards, no leaving delivered
	assert.False(t, models.CanDeliveryTransition(models.DeliveryInTransit, models.DeliveryPicked))
	assert.False(t, models.CanDeliveryTransition(models.DeliveryDelivered, models.DeliveryInTransit))
	assert.False(t, models.CanDeliveryTransition(models.DeliveryDelivered, models.DeliveryPicked))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, models.ValidOrderStatus(models.OrderPending))
	assert.False(t, models.ValidOrderStatus("shipped"))
	assert.False(t, models.ValidOrderStatus(""))

	assert.True(t, models.ValidDeliveryStatus(models.DeliveryPicked))
	assert.False(t, models.ValidDeliveryStatus("on_the_way"))
	assert.False(t, models.ValidDeliveryStatus(""))
}

func TestPresentedStatus(t *testing.T) {
	order := &models.Order{Status: models.OrderPending}

	// No rider yet: a pending order reads as awaiting pickup.
	assert.Equal(t, "awaiting_pickup", models.PresentedStatus(order, nil))

	// A delivery that exists but has not started moving defers to the order.
	order.Status = models.OrderConfirmed
	delivery := &models.Delivery{Status: models.DeliveryUnassigned}
	assert.Equal(t, "confirmed", models.PresentedStatus(order, delivery))

	// Once the rider is moving, the delivery status wins.
	delivery.Status = models.DeliveryPicked
	assert.Equal(t, "picked", models.PresentedStatus(order, delivery))

	delivery.Status = models.DeliveryInTransit
	order.Status = models.OrderOutForDelivery
	assert.Equal(t, "in_transit", models.PresentedStatus(order, delivery))

	delivery.Status = models.DeliveryDelivered
	order.Status = models.OrderDelivered
	assert.Equal(t, "delivered", models.PresentedStatus(order, delivery))
}

func TestCartSubtotal(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{ItemID: "item-1", Name: "Kottu", Price: 500, Quantity: 2},
			{ItemID: "item-2", Name: "Fresh Lime", Price: 150, Quantity: 2},
		},
	}
	assert.Equal(t, 1300.0, cart.Subtotal())

	empty := &models.Cart{}
	assert.Equal(t, 0.0, empty.Subtotal())
}

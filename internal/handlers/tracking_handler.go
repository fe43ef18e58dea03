package handlers

import (
	"log"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// TrackingHandler exposes the live order-tracking websocket feed.
type TrackingHandler struct {
	hub          *tracking.Hub
	orderService *services.OrderService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(hub *tracking.Hub, orderService *services.OrderService) *TrackingHandler {
	return &TrackingHandler{
		hub:          hub,
		orderService: orderService,
	}
}

// RegisterRoutes registers the websocket tracking route.
func (h *TrackingHandler) RegisterRoutes(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws/track/:orderId", websocket.New(h.handleTrack))
}

// handleTrack streams presented-status updates for one order. The current
// status is pushed immediately on connect, then every transition is
// broadcast until the client disconnects.
func (h *TrackingHandler) handleTrack(conn *websocket.Conn) {
	orderID := conn.Params("orderId")

	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		_ = conn.WriteJSON(fiber.Map{"error": "order not found"})
		_ = conn.Close()
		return
	}

	h.hub.Subscribe(orderID, conn)
	defer h.hub.Unsubscribe(orderID, conn)

	if presented, err := h.orderService.Present(order); err == nil {
		_ = conn.WriteJSON(fiber.Map{
			"orderId": orderID,
			"status":  presented.PresentedStatus,
		})
	}

	// Drain reads until the peer goes away; writes come from the hub.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("Tracking connection closed for order %s: %v", orderID, err)
			return
		}
	}
}

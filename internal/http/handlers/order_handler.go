package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/orderstatus"
)

type OrderHandler struct {
	Orders OrderStatusAPI
}

// Actions lists the legal next statuses for an order, plus the derived
// cancel/reorder flags the customer and management views use.
func (h *OrderHandler) Actions(c *fiber.Ctx) error {
	order, err := h.Orders.Order(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, "order.actions", err)
	}
	return c.JSON(fiber.Map{
		"status":              order.Status,
		"actions":             orderstatus.AvailableActions(order.Status),
		"terminal":            orderstatus.IsTerminal(order.Status),
		"cancellableCustomer": orderstatus.CanCancelAsCustomer(order.Status),
		"cancellableManager":  orderstatus.CanCancelAsManager(order.Status),
		"reorderable":         orderstatus.CanReorder(order.Status),
	})
}

type statusReq struct {
	Status domain.OrderStatus `json:"status"`
}

// UpdateStatus checks the transition table before asking the backend.
// The backend stays the final authority; a stale UI that slips past the
// local check gets the backend's rejection surfaced as an upstream error.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req statusReq
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing status"})
	}

	id := c.Params("id")
	order, err := h.Orders.Order(c.Context(), id)
	if err != nil {
		return fail(c, "order.status.get", err)
	}
	if !orderstatus.CanTransition(order.Status, req.Status) {
		applog.Warn(c, "order.status.invalid", map[string]any{
			"order_id": id, "from": order.Status, "to": req.Status,
		})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "invalid transition",
			"from":  order.Status,
			"to":    req.Status,
		})
	}

	updated, err := h.Orders.UpdateOrderStatus(c.Context(), id, req.Status)
	if err != nil {
		return fail(c, "order.status.update", err)
	}
	applog.Audit(c, "order.status.updated", map[string]any{
		"order_id": id, "from": order.Status, "to": updated.Status,
	})
	return c.JSON(updated)
}

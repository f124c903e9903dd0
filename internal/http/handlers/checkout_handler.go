package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/cartstore"
	"shopfront/internal/checkout"
)

type CheckoutHandler struct {
	Stores  *cartstore.Manager
	Backend checkout.OrderAPI
}

func (h *CheckoutHandler) orchestrator(c *fiber.Ctx) *checkout.Orchestrator {
	return checkout.New(h.Stores.Get(ensureSID(c)), h.Backend)
}

// Begin creates the remote order and hands the payment-order id back for
// the payment UI's approval step.
func (h *CheckoutHandler) Begin(c *fiber.Ctx) error {
	order, err := h.orchestrator(c).Begin(c.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
		}
		return fail(c, "checkout.begin", err)
	}
	return c.JSON(order)
}

type captureReq struct {
	PaymentOrderID string `json:"paymentOrderId"`
}

// Capture finishes the checkout after payment approval. The cart is
// cleared only when the capture succeeded.
func (h *CheckoutHandler) Capture(c *fiber.Ctx) error {
	var req captureReq
	if err := c.BodyParser(&req); err != nil || req.PaymentOrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing paymentOrderId"})
	}
	res, err := h.orchestrator(c).Complete(c.Context(), req.PaymentOrderID)
	if err != nil {
		return fail(c, "checkout.capture", err)
	}
	return c.JSON(res)
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/cartstore"
)

type CartHandler struct {
	Stores  *cartstore.Manager
	Catalog CatalogAPI
}

func (h *CartHandler) store(c *fiber.Ctx) *cartstore.Store {
	return h.Stores.Get(ensureSID(c))
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	s := h.store(c)
	return c.JSON(fiber.Map{
		"cart":            s.Current(),
		"subtotalExclTax": s.SubtotalExclTax(),
		"totalTax":        s.TotalTax(),
		"totalInclTax":    s.TotalInclTax(),
	})
}

func (h *CartHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.store(c).Summary())
}

type addItemReq struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemReq
	if err := c.BodyParser(&req); err != nil || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	item, err := h.Catalog.Product(c.Context(), req.ProductID)
	if err != nil {
		return fail(c, "cart.add.product", err)
	}

	cart, err := h.store(c).AddItem(item, req.Quantity)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	return c.JSON(cart)
}

type updateItemReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req updateItemReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing quantity"})
	}
	cart, err := h.store(c).UpdateItemQuantity(c.Params("id"), req.Quantity)
	if err != nil {
		return fail(c, "cart.update", err)
	}
	return c.JSON(cart)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	return c.JSON(h.store(c).RemoveItem(c.Params("id")))
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return c.JSON(h.store(c).Clear())
}

func (h *CartHandler) Contains(c *fiber.Ctx) error {
	pid, err := strconv.ParseInt(c.Params("productId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad productId"})
	}
	s := h.store(c)
	qty := s.ItemQuantity(pid)
	return c.JSON(fiber.Map{"inCart": qty > 0, "quantity": qty})
}

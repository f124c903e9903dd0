package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/pricing"
	"shopfront/internal/stock"
)

type ProductHandler struct {
	Catalog           CatalogAPI
	LowStockThreshold int
}

// Quote returns everything a product card needs to render: applicable
// prices, promotion figures and the stock badge.
func (h *ProductHandler) Quote(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad product id"})
	}
	item, err := h.Catalog.Product(c.Context(), id)
	if err != nil {
		return fail(c, "product.quote", err)
	}

	now := time.Now()
	status := stock.ClassifyWithThreshold(item.StockQuantity, h.LowStockThreshold)
	return c.JSON(fiber.Map{
		"productId":           item.ID,
		"priceExclTax":        pricing.ApplicablePriceExclTax(item, now),
		"priceInclTax":        pricing.ApplicablePriceInclTax(item, now),
		"normalPriceInclTax":  pricing.PriceWithTax(item.Price, item.TaxRate),
		"onPromotion":         pricing.IsValidPromotion(item, now),
		"discountPercentage":  pricing.DiscountPercentage(item, now),
		"savingsInclTax":      pricing.SavingsInclTax(item, now),
		"promotionEndingSoon": pricing.IsPromotionExpiringSoon(item, now),
		"stockStatus":         status,
		"stockDisplay":        stock.Displays[status],
	})
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopfront/internal/backend"
	"shopfront/internal/cartstore"
	applog "shopfront/internal/log"
)

// ensureSID gives every client a session cookie; one cart per sid.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

// fail maps domain errors onto HTTP statuses and a uniform JSON body.
func fail(c *fiber.Ctx, action string, err error) error {
	var ise *cartstore.InsufficientStockError
	if errors.As(err, &ise) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "insufficient stock",
			"requested": ise.Requested,
			"available": ise.Available,
		})
	}
	var re *backend.RemoteError
	if errors.As(err, &re) {
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "upstream request failed"})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopfront/internal/backend"
	"shopfront/internal/cartstore"
	"shopfront/internal/config"
	"shopfront/internal/http/handlers"
	applog "shopfront/internal/log"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	// Cart storage: redis when configured, sqlite file otherwise.
	var storage cartstore.Storage
	if cfg.RedisAddr != "" {
		storage = cartstore.NewRedisStorage(cfg.RedisAddr)
		log.Printf("[storage] redis at %s", cfg.RedisAddr)
	} else {
		st, err := cartstore.OpenSQL(cfg.CartDB)
		if err != nil {
			log.Fatal(err)
		}
		storage = st
		log.Printf("[storage] sqlite at %s", cfg.CartDB)
	}

	stores := cartstore.NewManager(storage)
	// Audit every cart change through the summary stream.
	stores.OnCreate = func(sid string, s *cartstore.Store) {
		s.SubscribeSummary(func(sum cartstore.Summary) {
			applog.Audit(nil, "cart.changed", map[string]any{
				"session": sid, "item_count": sum.ItemCount, "total_incl_tax": sum.TotalInclTax,
			})
		})
	}

	api := backend.New(cfg.APIBaseURL)
	deps := handlers.NewDeps(stores, api, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Cart ----------
	app.Get("/cart", deps.CartHandler.View)
	app.Get("/cart/summary", deps.CartHandler.Summary)
	app.Get("/cart/contains/:productId", deps.CartHandler.Contains)
	app.Post("/cart/items", deps.CartHandler.AddItem)
	app.Patch("/cart/items/:id", deps.CartHandler.UpdateItem)
	app.Delete("/cart/items/:id", deps.CartHandler.RemoveItem)
	app.Post("/cart/clear", deps.CartHandler.Clear)

	// ---------- Checkout ----------
	app.Post("/checkout", deps.CheckoutHandler.Begin)
	app.Post("/checkout/capture", deps.CheckoutHandler.Capture)

	// ---------- Catalog quotes ----------
	app.Get("/products/:id/quote", deps.ProductHandler.Quote)

	// ---------- Order management ----------
	app.Get("/orders/:id/actions", deps.OrderHandler.Actions)
	app.Post("/orders/:id/status", deps.OrderHandler.UpdateStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

package handlers

import (
	"context"

	"shopfront/internal/backend"
	"shopfront/internal/cartstore"
	"shopfront/internal/config"
	"shopfront/internal/domain"
)

// CatalogAPI is the catalog slice of the backend the handlers read from.
type CatalogAPI interface {
	Product(ctx context.Context, id int64) (domain.CatalogItem, error)
}

// OrderStatusAPI is the order slice used by the management endpoints.
type OrderStatusAPI interface {
	Order(ctx context.Context, id string) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error)
}

type Deps struct {
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	OrderHandler    *OrderHandler
	ProductHandler  *ProductHandler
}

func NewDeps(stores *cartstore.Manager, api *backend.Client, cfg config.Config) *Deps {
	return &Deps{
		CartHandler:     &CartHandler{Stores: stores, Catalog: api},
		CheckoutHandler: &CheckoutHandler{Stores: stores, Backend: api},
		OrderHandler:    &OrderHandler{Orders: api},
		ProductHandler:  &ProductHandler{Catalog: api, LowStockThreshold: cfg.LowStockThreshold},
	}
}

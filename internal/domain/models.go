package domain

import "time"

// CatalogItem is what the catalog API returns for a product. The core
// never writes catalog data; it only snapshots it into the cart.
type CatalogItem struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	SKU             string     `json:"sku"`
	Price           float64    `json:"price"` // tax-exclusive
	TaxRate         float64    `json:"taxRate"`
	StockQuantity   int        `json:"stockQuantity"`
	OnPromotion     bool       `json:"onPromotion"`
	PromotionPrice  *float64   `json:"promotionPrice,omitempty"`
	PromotionEndsAt *time.Time `json:"promotionEndsAt,omitempty"`
	CategoryID      int64      `json:"categoryId"`
	ImageURLs       []string   `json:"imageUrls,omitempty"`
}

// CartItem freezes price, tax rate and stock cap at the moment the
// product was added. What-you-saw-is-what-you-pay: later catalog
// changes do not touch existing lines.
type CartItem struct {
	ID          string  `json:"id"`
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	CategoryID  int64   `json:"categoryId"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	UnitPrice   float64 `json:"unitPrice"` // tax-exclusive, at add time
	TaxRate     float64 `json:"taxRate"`
	Quantity    int     `json:"quantity"`    // always >= 1
	MaxQuantity int     `json:"maxQuantity"` // stock at add time
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"` // sum of quantities, recomputed
	Discount  float64    `json:"discount"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusProcessing     OrderStatus = "PROCESSING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusShipped        OrderStatus = "SHIPPED"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string { return string(s) }

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	UnitPrice float64 `json:"unitPrice"`
	TaxRate   float64 `json:"taxRate"`
	Quantity  int     `json:"quantity"`
}

// Order is backend-owned. The client never fabricates order ids; they
// arrive from the order-creation endpoint together with the payment
// provider's order id.
type Order struct {
	ID             string      `json:"id"`
	Status         OrderStatus `json:"status"`
	Items          []OrderItem `json:"items"`
	Total          float64     `json:"total"`
	PaymentOrderID string      `json:"paymentOrderId"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// CaptureResult is the payment provider's answer to a capture request.
type CaptureResult struct {
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId"`
	PayerName     string  `json:"payerName,omitempty"`
	PayerEmail    string  `json:"payerEmail,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

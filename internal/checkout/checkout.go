package checkout

import (
	"context"
	"errors"

	"shopfront/internal/cartstore"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
)

// ErrEmptyCart rejects a checkout started with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// OrderAPI is the slice of the backend the orchestrator needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, cart domain.Cart) (domain.Order, error)
	CapturePayment(ctx context.Context, paymentOrderID string) (domain.CaptureResult, error)
}

// Orchestrator runs the two-phase checkout around the external payment
// approval: Begin creates the backend order, the payment UI collects the
// user's approval out of band, Complete captures and only then clears
// the cart. Any failure before a successful capture leaves the cart
// exactly as it was.
type Orchestrator struct {
	Store   *cartstore.Store
	Backend OrderAPI
}

func New(store *cartstore.Store, api OrderAPI) *Orchestrator {
	return &Orchestrator{Store: store, Backend: api}
}

// Begin snapshots the cart and creates the remote order, returning it
// with the provider's payment-order id for the approval step. The cart
// is not touched.
func (o *Orchestrator) Begin(ctx context.Context) (domain.Order, error) {
	cart := o.Store.Current()
	if len(cart.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	order, err := o.Backend.CreateOrder(ctx, cart)
	if err != nil {
		applog.Error(nil, "checkout.create.fail", err, map[string]any{"cart_id": cart.ID})
		return domain.Order{}, err
	}
	applog.Info(nil, "checkout.created", map[string]any{
		"order_id": order.ID, "payment_order_id": order.PaymentOrderID, "total": order.Total,
	})
	return order, nil
}

// Complete captures the approved payment. Only a successful capture
// clears the cart; on failure the cart survives for another attempt.
func (o *Orchestrator) Complete(ctx context.Context, paymentOrderID string) (domain.CaptureResult, error) {
	res, err := o.Backend.CapturePayment(ctx, paymentOrderID)
	if err != nil {
		applog.Error(nil, "checkout.capture.fail", err, map[string]any{"payment_order_id": paymentOrderID})
		return domain.CaptureResult{}, err
	}

	o.Store.Clear()
	applog.Audit(nil, "checkout.completed", map[string]any{
		"payment_order_id": paymentOrderID, "transaction_id": res.TransactionID, "amount": res.Amount,
	})
	return res, nil
}

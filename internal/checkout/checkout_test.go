package checkout_test

import (
	"context"
	"errors"
	"testing"

	"shopfront/internal/cartstore"
	"shopfront/internal/checkout"
	"shopfront/internal/domain"
)

type fakeAPI struct {
	createErr  error
	captureErr error
	created    []domain.Cart
	captured   []string
}

func (f *fakeAPI) CreateOrder(_ context.Context, cart domain.Cart) (domain.Order, error) {
	if f.createErr != nil {
		return domain.Order{}, f.createErr
	}
	f.created = append(f.created, cart)
	return domain.Order{
		ID: "ord-1", Status: domain.StatusPending,
		Total: 24, PaymentOrderID: "pay-123",
	}, nil
}

func (f *fakeAPI) CapturePayment(_ context.Context, id string) (domain.CaptureResult, error) {
	if f.captureErr != nil {
		return domain.CaptureResult{}, f.captureErr
	}
	f.captured = append(f.captured, id)
	return domain.CaptureResult{Status: "COMPLETED", TransactionID: "txn-9", Amount: 24, Currency: "EUR"}, nil
}

type nopStorage struct{}

func (nopStorage) Load(string) ([]byte, error) { return nil, cartstore.ErrNotFound }
func (nopStorage) Save(string, []byte) error   { return nil }

func newStoreWithItem(t *testing.T) *cartstore.Store {
	t.Helper()
	s := cartstore.NewStore(nopStorage{}, "cart:co")
	if _, err := s.AddItem(domain.CatalogItem{ID: 1, Name: "GBC", Price: 10, TaxRate: 0.2, StockQuantity: 3}, 2); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBeginCreatesOrderAndKeepsCart(t *testing.T) {
	store := newStoreWithItem(t)
	api := &fakeAPI{}
	o := checkout.New(store, api)

	order, err := o.Begin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if order.PaymentOrderID != "pay-123" {
		t.Fatalf("payment order id missing: %+v", order)
	}
	if len(api.created) != 1 || api.created[0].ItemCount != 2 {
		t.Fatalf("backend did not get the full cart: %+v", api.created)
	}
	// cart untouched until capture succeeds
	if store.Current().ItemCount != 2 {
		t.Fatal("Begin must not touch the cart")
	}
}

func TestBeginEmptyCart(t *testing.T) {
	store := cartstore.NewStore(nopStorage{}, "cart:empty")
	o := checkout.New(store, &fakeAPI{})
	if _, err := o.Begin(context.Background()); !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}

func TestBeginFailureLeavesCart(t *testing.T) {
	store := newStoreWithItem(t)
	api := &fakeAPI{createErr: errors.New("backend down")}
	o := checkout.New(store, api)

	if _, err := o.Begin(context.Background()); err == nil {
		t.Fatal("expected create failure to propagate")
	}
	if store.Current().ItemCount != 2 {
		t.Fatal("failed order creation must leave the cart intact")
	}
}

func TestCompleteClearsCartOnlyOnCapture(t *testing.T) {
	store := newStoreWithItem(t)
	api := &fakeAPI{captureErr: errors.New("capture declined")}
	o := checkout.New(store, api)

	if _, err := o.Complete(context.Background(), "pay-123"); err == nil {
		t.Fatal("expected capture failure to propagate")
	}
	if store.Current().ItemCount != 2 {
		t.Fatal("failed capture must not clear the cart")
	}

	api.captureErr = nil
	res, err := o.Complete(context.Background(), "pay-123")
	if err != nil {
		t.Fatal(err)
	}
	if res.TransactionID != "txn-9" {
		t.Fatalf("capture result not passed through: %+v", res)
	}
	if store.Current().ItemCount != 0 {
		t.Fatal("successful capture must clear the cart")
	}
}

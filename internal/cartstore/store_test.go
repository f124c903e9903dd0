package cartstore_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"shopfront/internal/cartstore"
	"shopfront/internal/domain"
)

// memStorage is an in-memory Storage for tests that don't need sqlite.
type memStorage struct {
	blobs map[string][]byte
	fail  bool // when set, Save always errors
}

func newMemStorage() *memStorage { return &memStorage{blobs: map[string][]byte{}} }

func (m *memStorage) Load(key string) ([]byte, error) {
	b, ok := m.blobs[key]
	if !ok {
		return nil, cartstore.ErrNotFound
	}
	return b, nil
}

func (m *memStorage) Save(key string, data []byte) error {
	if m.fail {
		return errors.New("storage unavailable")
	}
	m.blobs[key] = data
	return nil
}

func gbc(stock int) domain.CatalogItem {
	return domain.CatalogItem{
		ID: 1, Name: "Game Boy Color", SKU: "GBC-001", CategoryID: 7,
		Price: 10, TaxRate: 0.2, StockQuantity: stock,
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAddItemAndTotals(t *testing.T) {
	s := cartstore.NewStore(newMemStorage(), "cart:t1")

	cart, err := s.AddItem(gbc(3), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("bad cart after add: %+v", cart)
	}
	if cart.ItemCount != 2 {
		t.Fatalf("itemCount = %d, want 2", cart.ItemCount)
	}
	if got := s.TotalInclTax(); !almostEqual(got, 24) {
		t.Fatalf("total incl tax = %v, want 24", got)
	}
	if got := s.SubtotalExclTax(); !almostEqual(got, 20) {
		t.Fatalf("subtotal = %v, want 20", got)
	}
	if got := s.TotalTax(); !almostEqual(got, 4) {
		t.Fatalf("tax = %v, want 4", got)
	}
}

func TestAddItemInsufficientStock(t *testing.T) {
	s := cartstore.NewStore(newMemStorage(), "cart:t2")

	if _, err := s.AddItem(gbc(3), 2); err != nil {
		t.Fatal(err)
	}
	// combined 4 > stock 3
	_, err := s.AddItem(gbc(3), 2)
	var ise *cartstore.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if ise.Requested != 4 || ise.Available != 3 {
		t.Fatalf("error payload: %+v", ise)
	}
	// cart unchanged
	cart := s.Current()
	if cart.ItemCount != 2 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart mutated on failed add: %+v", cart)
	}

	// fresh line alone above stock also fails
	if _, err := s.AddItem(domain.CatalogItem{ID: 9, Price: 5, StockQuantity: 1}, 2); err == nil {
		t.Fatal("expected InsufficientStock for new line above stock")
	}
	if s.ItemQuantity(9) != 0 {
		t.Fatal("failed add must not create a line")
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	s := cartstore.NewStore(newMemStorage(), "cart:t3")
	cart, _ := s.AddItem(gbc(5), 2)
	id := cart.Items[0].ID

	if _, err := s.UpdateItemQuantity(id, 4); err != nil {
		t.Fatal(err)
	}
	if q := s.ItemQuantity(1); q != 4 {
		t.Fatalf("quantity = %d, want 4", q)
	}

	// above the captured cap
	_, err := s.UpdateItemQuantity(id, 6)
	var ise *cartstore.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if q := s.ItemQuantity(1); q != 4 {
		t.Fatalf("failed update mutated quantity: %d", q)
	}

	// zero removes the line
	cart, err = s.UpdateItemQuantity(id, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 || cart.ItemCount != 0 {
		t.Fatalf("zero quantity should remove the line: %+v", cart)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	s := cartstore.NewStore(newMemStorage(), "cart:t4")
	cart, _ := s.AddItem(gbc(5), 1)
	id := cart.Items[0].ID

	if cart := s.RemoveItem(id); len(cart.Items) != 0 {
		t.Fatalf("remove failed: %+v", cart)
	}
	// second remove is a no-op, not an error
	if cart := s.RemoveItem(id); len(cart.Items) != 0 || cart.ItemCount != 0 {
		t.Fatalf("second remove misbehaved: %+v", cart)
	}
}

func TestClear(t *testing.T) {
	s := cartstore.NewStore(newMemStorage(), "cart:t5")
	before, _ := s.AddItem(gbc(5), 2)

	after := s.Clear()
	if len(after.Items) != 0 || after.ItemCount != 0 {
		t.Fatalf("clear left items: %+v", after)
	}
	if after.ID == before.ID {
		t.Fatal("clear must mint a new cart id")
	}
}

func TestPriceSnapshotAtAddTime(t *testing.T) {
	promo := 8.0
	ends := time.Now().Add(24 * time.Hour)
	it := gbc(5)
	it.OnPromotion = true
	it.PromotionPrice = &promo
	it.PromotionEndsAt = &ends

	s := cartstore.NewStore(newMemStorage(), "cart:t6")
	cart, _ := s.AddItem(it, 1)
	if !almostEqual(cart.Items[0].UnitPrice, 8) {
		t.Fatalf("promo price not captured: %v", cart.Items[0].UnitPrice)
	}
	if cart.Items[0].MaxQuantity != 5 {
		t.Fatalf("stock cap not captured: %d", cart.Items[0].MaxQuantity)
	}
	if cart.Items[0].Name != "Game Boy Color" || cart.Items[0].SKU != "GBC-001" {
		t.Fatalf("snapshot fields missing: %+v", cart.Items[0])
	}
}

func TestQuantityInvariantAcrossMutations(t *testing.T) {
	s := cartstore.NewStore(newMemStorage(), "cart:t7")

	second := domain.CatalogItem{ID: 2, Name: "NES", Price: 199, TaxRate: 0.1, StockQuantity: 4}
	s.AddItem(gbc(3), 1)
	s.AddItem(second, 4)
	s.AddItem(gbc(3), 5)  // fails, combined 6 > 3
	s.AddItem(gbc(3), 2)  // ok, combined 3
	cart := s.Current()
	if len(cart.Items) > 0 {
		if _, err := s.UpdateItemQuantity(cart.Items[0].ID, 2); err != nil {
			t.Fatal(err)
		}
	}

	cart = s.Current()
	sum := 0
	for _, line := range cart.Items {
		if line.Quantity < 1 || line.Quantity > line.MaxQuantity {
			t.Fatalf("line breaks invariant: %+v", line)
		}
		sum += line.Quantity
	}
	if cart.ItemCount != sum {
		t.Fatalf("itemCount %d != sum of quantities %d", cart.ItemCount, sum)
	}
}

func TestPersistenceFailureDoesNotBlockMutation(t *testing.T) {
	st := newMemStorage()
	st.fail = true
	s := cartstore.NewStore(st, "cart:t8")

	cart, err := s.AddItem(gbc(5), 2)
	if err != nil {
		t.Fatalf("mutation must survive persistence failure: %v", err)
	}
	if cart.ItemCount != 2 {
		t.Fatalf("in-memory cart not updated: %+v", cart)
	}
}

func TestDiscountInTotal(t *testing.T) {
	st := newMemStorage()
	s := cartstore.NewStore(st, "cart:t9")
	cart, _ := s.AddItem(gbc(5), 2) // 24.00 incl tax

	// carts restore with their discount; simulate one persisted earlier
	cart.Discount = 4
	data := mustJSON(t, cart)
	st.blobs["cart:t9b"] = data
	restored := cartstore.NewStore(st, "cart:t9b")
	if got := restored.TotalInclTax(); !almostEqual(got, 20) {
		t.Fatalf("discounted total = %v, want 20", got)
	}
}

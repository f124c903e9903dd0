package cartstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/pricing"
)

// InsufficientStockError rejects a cart mutation whose quantity would
// exceed the stock cap. The cart is left exactly as it was.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (need %d, have %d)", e.ProductID, e.Requested, e.Available)
}

// Summary is the condensed cart view the badge/checkout widgets consume.
type Summary struct {
	ItemCount    int     `json:"itemCount"`
	TotalInclTax float64 `json:"totalInclTax"`
}

// Store is the sole writer of one cart. Every successful mutation
// recomputes ItemCount, stamps UpdatedAt, persists the cart and then
// publishes it to subscribers, in mutation order. Failed mutations
// change nothing: no persist, no publish.
type Store struct {
	mu      sync.Mutex
	key     string
	storage Storage
	cart    domain.Cart
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id   int
	fn   func(domain.Cart)
	sumF func(Summary)
}

// NewStore restores the cart persisted under key, or starts a fresh
// empty cart when nothing readable is there. A corrupt blob is logged
// and treated the same as no blob; initialization never fails.
func NewStore(storage Storage, key string) *Store {
	s := &Store{key: key, storage: storage}

	data, err := storage.Load(key)
	if err == nil {
		var cart domain.Cart
		if uerr := json.Unmarshal(data, &cart); uerr == nil && cart.ID != "" {
			cart.ItemCount = countItems(cart.Items)
			s.cart = cart
			return s
		}
		applog.Error(nil, "cart.restore.corrupt", fmt.Errorf("unreadable cart blob for %s", key), nil)
	} else if err != ErrNotFound {
		applog.Error(nil, "cart.restore.fail", err, map[string]any{"key": key})
	}

	s.cart = emptyCart()
	return s
}

func emptyCart() domain.Cart {
	now := time.Now().UTC()
	return domain.Cart{
		ID:        uuid.NewString(),
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func countItems(items []domain.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func cloneCart(c domain.Cart) domain.Cart {
	out := c
	out.Items = make([]domain.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// Current returns a snapshot of the cart.
func (s *Store) Current() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cart)
}

// AddItem puts qty units of a catalog item in the cart. An existing
// line for the same product grows; the combined quantity is checked
// against the item's current stock. A new line snapshots name, price,
// tax rate and stock cap as of now.
func (s *Store) AddItem(item domain.CatalogItem, qty int) (domain.Cart, error) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.cart.Items {
		if line.ProductID != item.ID {
			continue
		}
		combined := line.Quantity + qty
		if combined > item.StockQuantity {
			return cloneCart(s.cart), &InsufficientStockError{
				ProductID: item.ID, Requested: combined, Available: item.StockQuantity,
			}
		}
		s.cart.Items[i].Quantity = combined
		s.cart.Items[i].MaxQuantity = item.StockQuantity
		return s.commit(), nil
	}

	if qty > item.StockQuantity {
		return cloneCart(s.cart), &InsufficientStockError{
			ProductID: item.ID, Requested: qty, Available: item.StockQuantity,
		}
	}

	img := ""
	if len(item.ImageURLs) > 0 {
		img = item.ImageURLs[0]
	}
	s.cart.Items = append(s.cart.Items, domain.CartItem{
		ID:          uuid.NewString(),
		ProductID:   item.ID,
		Name:        item.Name,
		SKU:         item.SKU,
		CategoryID:  item.CategoryID,
		ImageURL:    img,
		UnitPrice:   pricing.ApplicablePriceExclTax(item, time.Now()),
		TaxRate:     item.TaxRate,
		Quantity:    qty,
		MaxQuantity: item.StockQuantity,
	})
	return s.commit(), nil
}

// UpdateItemQuantity sets a line's quantity. Zero or less removes the
// line; more than the captured stock cap fails without mutating.
func (s *Store) UpdateItemQuantity(cartItemID string, qty int) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return s.removeLocked(cartItemID), nil
	}
	for i, line := range s.cart.Items {
		if line.ID != cartItemID {
			continue
		}
		if qty > line.MaxQuantity {
			return cloneCart(s.cart), &InsufficientStockError{
				ProductID: line.ProductID, Requested: qty, Available: line.MaxQuantity,
			}
		}
		s.cart.Items[i].Quantity = qty
		return s.commit(), nil
	}
	return cloneCart(s.cart), nil
}

// RemoveItem drops a line. Unknown ids are a no-op, not an error.
func (s *Store) RemoveItem(cartItemID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(cartItemID)
}

func (s *Store) removeLocked(cartItemID string) domain.Cart {
	for i, line := range s.cart.Items {
		if line.ID == cartItemID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			return s.commit()
		}
	}
	return cloneCart(s.cart)
}

// Clear replaces the cart with a fresh empty one under a new id.
func (s *Store) Clear() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = emptyCart()
	return s.commit()
}

// ItemQuantity is the quantity of a product in the cart, 0 if absent.
func (s *Store) ItemQuantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.cart.Items {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

func (s *Store) Contains(productID int64) bool { return s.ItemQuantity(productID) > 0 }

// Derived totals, computed on demand and never stored.

func (s *Store) SubtotalExclTax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotalExclTax(s.cart)
}

func (s *Store) TotalTax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalTax(s.cart)
}

func (s *Store) TotalInclTax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalInclTax(s.cart)
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{ItemCount: s.cart.ItemCount, TotalInclTax: totalInclTax(s.cart)}
}

func subtotalExclTax(c domain.Cart) float64 {
	sum := 0.0
	for _, line := range c.Items {
		sum += float64(line.Quantity) * line.UnitPrice
	}
	return sum
}

func totalTax(c domain.Cart) float64 {
	sum := 0.0
	for _, line := range c.Items {
		q := float64(line.Quantity)
		sum += q*pricing.PriceWithTax(line.UnitPrice, line.TaxRate) - q*line.UnitPrice
	}
	return sum
}

func totalInclTax(c domain.Cart) float64 {
	return subtotalExclTax(c) + totalTax(c) - c.Discount
}

// Subscribe registers fn for every published cart, in mutation order.
// The returned function unregisters it; consumers call it on teardown.
// Subscribers run synchronously under the store lock and must not call
// back into the store.
func (s *Store) Subscribe(fn func(domain.Cart)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribeLocked(subscriber{fn: fn})
}

// SubscribeSummary is Subscribe for the condensed view (badge counters,
// mini-cart widgets).
func (s *Store) SubscribeSummary(fn func(Summary)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribeLocked(subscriber{sumF: fn})
}

func (s *Store) subscribeLocked(sub subscriber) func() {
	s.nextSub++
	sub.id = s.nextSub
	s.subs = append(s.subs, sub)
	id := sub.id
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, x := range s.subs {
			if x.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// commit finalizes a successful mutation: recount, stamp, persist,
// publish. A persistence failure is logged and swallowed; the in-memory
// cart stays authoritative for the session. Callers hold s.mu.
func (s *Store) commit() domain.Cart {
	s.cart.ItemCount = countItems(s.cart.Items)
	s.cart.UpdatedAt = time.Now().UTC()

	if data, err := json.Marshal(s.cart); err != nil {
		applog.Error(nil, "cart.persist.encode", err, map[string]any{"key": s.key})
	} else if err := s.storage.Save(s.key, data); err != nil {
		applog.Error(nil, "cart.persist.fail", err, map[string]any{"key": s.key})
	}

	snap := cloneCart(s.cart)
	sum := Summary{ItemCount: snap.ItemCount, TotalInclTax: totalInclTax(snap)}
	for _, sub := range s.subs {
		if sub.fn != nil {
			sub.fn(snap)
		}
		if sub.sumF != nil {
			sub.sumF(sum)
		}
	}
	return snap
}

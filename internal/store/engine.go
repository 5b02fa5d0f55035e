// Package store implements the store engine: the single owner of catalog,
// cart, and order-ledger state for one shopping session.
package store

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sleekshopper/storefront/internal/cart"
	"github.com/sleekshopper/storefront/internal/catalog"
	"github.com/sleekshopper/storefront/internal/order"
	"github.com/sleekshopper/storefront/internal/pricing"
)

// ErrEmptyCart is returned when checkout is requested on an empty cart. No
// order is created and the cart is left untouched.
var ErrEmptyCart = errors.New("cannot check out an empty cart")

// Engine orchestrates the catalog, one cart, and the order ledger. It is an
// explicit per-session object: construct one per shopping session and pass it
// by reference to callers.
//
// The engine is not safe for concurrent use. Callers serving multiple
// concurrent requests against one session must serialize access externally;
// see the session registry in internal/api.
type Engine struct {
	catalog *catalog.Catalog
	cart    *cart.Cart
	ledger  *order.Ledger
	lg      *zap.Logger
	now     func() time.Time
	newID   func() string
}

// New creates an engine over the given catalog with an empty cart and ledger.
func New(cat *catalog.Catalog, lg *zap.Logger) *Engine {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Engine{
		catalog: cat,
		cart:    cart.New(),
		ledger:  order.NewLedger(),
		lg:      lg,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// FilterProducts returns the catalog narrowed by f, order preserved.
func (e *Engine) FilterProducts(f catalog.Filter) []catalog.Product {
	return e.catalog.Filter(f)
}

// ProductByID looks up a single product. Returns catalog.ErrNotFound when the
// id matches nothing.
func (e *Engine) ProductByID(id int) (catalog.Product, error) {
	return e.catalog.ByID(id)
}

// AddToCart resolves the product and adds it to the cart, merging quantities
// for a product already present. The returned notification describes the
// addition for the caller to display.
func (e *Engine) AddToCart(productID, quantity int) (cart.Added, error) {
	p, err := e.catalog.ByID(productID)
	if err != nil {
		return cart.Added{}, err
	}

	added, err := e.cart.Add(p, quantity)
	if err != nil {
		return cart.Added{}, err
	}

	e.lg.Info("added to cart",
		zap.Int("product_id", p.ID),
		zap.String("product", p.Name),
		zap.Int("quantity", quantity),
	)
	return added, nil
}

// RemoveFromCart deletes the product's line item; no-op when absent.
func (e *Engine) RemoveFromCart(productID int) {
	e.cart.Remove(productID)
}

// SetCartQuantity updates an existing line item's quantity. Quantities below 1
// are rejected with cart.ErrInvalidQuantity and leave the cart unchanged.
func (e *Engine) SetCartQuantity(productID, quantity int) error {
	return e.cart.SetQuantity(productID, quantity)
}

// ClearCart empties the cart.
func (e *Engine) ClearCart() {
	e.cart.Clear()
}

// CartItems returns the cart's line items in insertion order.
func (e *Engine) CartItems() []cart.LineItem {
	return e.cart.Items()
}

// CartSubtotal recomputes the cart subtotal from current contents.
func (e *Engine) CartSubtotal() decimal.Decimal {
	return e.cart.Subtotal()
}

// Quote prices the current cart subtotal.
func (e *Engine) Quote() pricing.Quote {
	return pricing.NewQuote(e.cart.Subtotal())
}

// PlaceOrder converts the current cart into an immutable order: it snapshots
// the line items and subtotal, appends the order to the ledger with status
// pending, and clears the cart. The steps are a single logical unit; no caller
// observes the order existing with the cart still full.
//
// Checkout of an empty cart fails with ErrEmptyCart and changes nothing.
func (e *Engine) PlaceOrder() (*order.Order, error) {
	if e.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := e.cart.Items()
	snapshot := make([]order.Item, len(items))
	for i, li := range items {
		snapshot[i] = order.Item{Product: li.Product, Quantity: li.Quantity}
	}

	o := &order.Order{
		ID:        e.newID(),
		Items:     snapshot,
		Total:     e.cart.Subtotal(),
		Status:    order.StatusPending,
		CreatedAt: e.now(),
	}
	if err := e.ledger.Append(o); err != nil {
		return nil, errors.Wrap(err, "append order")
	}
	e.cart.Clear()

	e.lg.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}

// Orders returns every placed order in placement order.
func (e *Engine) Orders() []*order.Order {
	return e.ledger.All()
}

// OrderByID looks up a placed order. Returns order.ErrNotFound when the id
// matches nothing.
func (e *Engine) OrderByID(id string) (*order.Order, error) {
	return e.ledger.ByID(id)
}

// AdvanceOrder moves an order one step forward in the fulfillment pipeline
// and returns the new status.
func (e *Engine) AdvanceOrder(id string) (order.Status, error) {
	o, err := e.ledger.ByID(id)
	if err != nil {
		return 0, err
	}

	st, err := o.AdvanceStatus()
	if err != nil {
		return st, err
	}

	e.lg.Info("order advanced",
		zap.String("order_id", id),
		zap.Stringer("status", st),
	)
	return st, nil
}

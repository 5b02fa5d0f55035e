// Package cart implements the mutable shopping cart: ordered line items keyed
// by product id with a subtotal derived from current contents.
package cart

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/sleekshopper/storefront/internal/catalog"
)

// ErrInvalidQuantity is returned when a caller requests a quantity below 1.
// The cart is left unchanged.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// LineItem pairs a product with the quantity being purchased.
type LineItem struct {
	Product  catalog.Product
	Quantity int
}

// Added describes a completed add-to-cart for the caller to display. The core
// attaches no behaviour to it beyond the message.
type Added struct {
	Product  catalog.Product
	Quantity int
}

// Message returns the human-readable notification text.
func (a Added) Message() string {
	return fmt.Sprintf("%s (%d) added to your cart", a.Product.Name, a.Quantity)
}

// Cart holds line items in the order their products were first added.
// Invariant: at most one line item per product id, every quantity >= 1.
type Cart struct {
	items []LineItem
	index map[int]int // product id -> position in items
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[int]int)}
}

// Add puts the product in the cart, merging with an existing line item by
// incrementing its quantity. Quantities below 1 are rejected.
func (c *Cart) Add(p catalog.Product, quantity int) (Added, error) {
	if quantity < 1 {
		return Added{}, ErrInvalidQuantity
	}

	if i, ok := c.index[p.ID]; ok {
		c.items[i].Quantity += quantity
	} else {
		c.index[p.ID] = len(c.items)
		c.items = append(c.items, LineItem{Product: p, Quantity: quantity})
	}

	return Added{Product: p, Quantity: quantity}, nil
}

// Remove deletes the line item for the given product id. Removing a product
// that is not in the cart is a no-op.
func (c *Cart) Remove(productID int) {
	i, ok := c.index[productID]
	if !ok {
		return
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, productID)
	for id, pos := range c.index {
		if pos > i {
			c.index[id] = pos - 1
		}
	}
}

// SetQuantity replaces the quantity of an existing line item. Quantities below
// 1 are rejected with ErrInvalidQuantity rather than treated as removal.
// Setting the quantity of a product not in the cart is a no-op.
func (c *Cart) SetQuantity(productID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if i, ok := c.index[productID]; ok {
		c.items[i].Quantity = quantity
	}
	return nil
}

// Clear removes every line item.
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[int]int)
}

// Items returns the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Subtotal recomputes the sum of price * quantity over current contents.
// The result is exact; rounding happens only at display time.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

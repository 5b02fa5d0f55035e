// Package order defines the immutable order record, its fulfillment status
// machine, and the append-only ledger that stores placed orders.
package order

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/sleekshopper/storefront/internal/catalog"
)

// Status is an order's position in the fulfillment pipeline. It only ever
// advances forward.
type Status int

//go:generate go tool stringer -type=Status -linecomment

const (
	StatusPending    Status = iota // pending
	StatusProcessing               // processing
	StatusShipped                  // shipped
	StatusDelivered                // delivered
)

// ErrDelivered is returned when advancing an order that has already reached
// its final status.
var ErrDelivered = errors.New("order already delivered")

// ParseStatus converts a status name back to its value.
func ParseStatus(s string) (Status, error) {
	for st := StatusPending; st <= StatusDelivered; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, errors.Errorf("unknown order status %q", s)
}

// Item is a line item frozen into an order at placement time. It carries a
// copy of the product, so later catalog or cart changes cannot reach it.
type Item struct {
	Product  catalog.Product
	Quantity int
}

// Order is a placed order. Items, Total, and CreatedAt never change after
// creation; Status is the only mutable field.
//
// Total is the cart subtotal at placement time. Shipping and tax are
// recomputed from it wherever displayed, never stored.
type Order struct {
	ID        string
	Items     []Item
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
}

// AdvanceStatus moves the order one step forward in the pipeline and returns
// the new status. Orders never move backwards or skip steps.
func (o *Order) AdvanceStatus() (Status, error) {
	if o.Status >= StatusDelivered {
		return o.Status, ErrDelivered
	}
	o.Status++
	return o.Status, nil
}

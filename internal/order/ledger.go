package order

import "github.com/go-faster/errors"

// ErrNotFound is returned when a requested order does not exist. Absence is a
// normal outcome for ledger lookups, not a fault.
var ErrNotFound = errors.New("order not found")

// Ledger is the append-only collection of placed orders. Orders are never
// removed or reordered; iteration order is placement order.
type Ledger struct {
	orders []*Order
	byID   map[string]*Order
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[string]*Order)}
}

// Append records a placed order. Appending a duplicate id is rejected, since
// order ids are unique within a process.
func (l *Ledger) Append(o *Order) error {
	if _, dup := l.byID[o.ID]; dup {
		return errors.Errorf("duplicate order id %s", o.ID)
	}
	l.orders = append(l.orders, o)
	l.byID[o.ID] = o
	return nil
}

// ByID returns the order with the given id, or ErrNotFound.
func (l *Ledger) ByID(id string) (*Order, error) {
	o, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

// All returns every order in placement order.
func (l *Ledger) All() []*Order {
	out := make([]*Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Len returns the number of placed orders.
func (l *Ledger) Len() int {
	return len(l.orders)
}

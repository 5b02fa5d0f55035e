package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleekshopper/storefront/internal/cart"
	"github.com/sleekshopper/storefront/internal/catalog"
	"github.com/sleekshopper/storefront/internal/order"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	cat, err := catalog.New([]catalog.Product{
		{ID: 1, Name: "A", Price: decimal.RequireFromString("10.00"), Category: "x", Rating: 4.0},
		{ID: 2, Name: "B", Price: decimal.RequireFromString("60.00"), Category: "y", Rating: 3.0},
	})
	require.NoError(t, err)

	e := New(cat, nil)

	// Deterministic ids and timestamps for assertions.
	var seq int
	e.newID = func() string {
		seq++
		return fmt.Sprintf("order-%d", seq)
	}
	e.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return e
}

func TestAddToCart(t *testing.T) {
	e := newTestEngine(t)

	added, err := e.AddToCart(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "A (2) added to your cart", added.Message())

	items := e.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.AddToCart(99, 1)
	require.ErrorIs(t, err, catalog.ErrNotFound)
	assert.True(t, e.CartSubtotal().IsZero())
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.AddToCart(1, 0)
	require.ErrorIs(t, err, cart.ErrInvalidQuantity)
	assert.Empty(t, e.CartItems())
}

func TestFilterProducts(t *testing.T) {
	e := newTestEngine(t)

	got := e.FilterProducts(catalog.Filter{Category: "x"})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestQuote(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddToCart(1, 2)
	require.NoError(t, err)
	_, err = e.AddToCart(2, 1)
	require.NoError(t, err)

	q := e.Quote()
	assert.True(t, decimal.RequireFromString("80.00").Equal(q.Subtotal))
	assert.True(t, decimal.Zero.Equal(q.Shipping))
	assert.True(t, decimal.RequireFromString("5.60").Equal(q.Tax))
	assert.True(t, decimal.RequireFromString("85.60").Equal(q.Total))
}

func TestPlaceOrder(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddToCart(1, 2)
	require.NoError(t, err)
	_, err = e.AddToCart(2, 1)
	require.NoError(t, err)

	subtotal := e.CartSubtotal()

	o, err := e.PlaceOrder()
	require.NoError(t, err)
	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.True(t, subtotal.Equal(o.Total))
	require.Len(t, o.Items, 2)

	// Exactly one order in the ledger, and the cart is empty on return.
	assert.Len(t, e.Orders(), 1)
	assert.Empty(t, e.CartItems())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.PlaceOrder()
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, e.Orders())
	assert.Empty(t, e.CartItems())
}

func TestPlaceOrder_SnapshotIndependentOfCart(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddToCart(1, 2)
	require.NoError(t, err)

	o, err := e.PlaceOrder()
	require.NoError(t, err)

	// New cart activity after checkout must not reach the placed order.
	_, err = e.AddToCart(2, 5)
	require.NoError(t, err)

	got, err := e.OrderByID(o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Product.ID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("20.00").Equal(got.Total))
}

func TestPlaceOrder_SequentialOrders(t *testing.T) {
	e := newTestEngine(t)

	for i := 1; i <= 3; i++ {
		_, err := e.AddToCart(1, i)
		require.NoError(t, err)
		_, err = e.PlaceOrder()
		require.NoError(t, err)
	}

	all := e.Orders()
	require.Len(t, all, 3)
	assert.Equal(t, "order-1", all[0].ID)
	assert.Equal(t, "order-3", all[2].ID)
}

func TestOrderByID_NotFound(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.OrderByID("missing")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestAdvanceOrder(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddToCart(1, 1)
	require.NoError(t, err)
	o, err := e.PlaceOrder()
	require.NoError(t, err)

	st, err := e.AdvanceOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, st)

	_, err = e.AdvanceOrder(o.ID)
	require.NoError(t, err)
	st, err = e.AdvanceOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, st)

	_, err = e.AdvanceOrder(o.ID)
	require.ErrorIs(t, err, order.ErrDelivered)
}

func TestAdvanceOrder_NotFound(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.AdvanceOrder("missing")
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestSetCartQuantity_RejectionLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddToCart(1, 3)
	require.NoError(t, err)

	err = e.SetCartQuantity(1, 0)
	require.ErrorIs(t, err, cart.ErrInvalidQuantity)

	items := e.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

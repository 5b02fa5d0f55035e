package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleekshopper/storefront/internal/catalog"
)

func testProduct(id int, name, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "test",
		Rating:   4.0,
	}
}

func TestAdd_MergesQuantities(t *testing.T) {
	c := New()
	p := testProduct(1, "Widget", "10.00")

	_, err := c.Add(p, 2)
	require.NoError(t, err)
	_, err = c.Add(p, 3)
	require.NoError(t, err)
	_, err = c.Add(p, 1)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAdd_RejectsQuantityBelowOne(t *testing.T) {
	c := New()
	p := testProduct(1, "Widget", "10.00")

	_, err := c.Add(p, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

func TestAdd_Notification(t *testing.T) {
	c := New()

	added, err := c.Add(testProduct(1, "Widget", "10.00"), 2)
	require.NoError(t, err)
	assert.Equal(t, "Widget (2) added to your cart", added.Message())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(2, "B", "1.00"), 1)
	_, _ = c.Add(testProduct(1, "A", "1.00"), 1)
	_, _ = c.Add(testProduct(3, "C", "1.00"), 1)
	_, _ = c.Add(testProduct(1, "A", "1.00"), 1) // merge must not move A

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{items[0].Product.ID, items[1].Product.ID, items[2].Product.ID})
}

func TestRemove(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(1, "A", "1.00"), 1)
	_, _ = c.Add(testProduct(2, "B", "2.00"), 1)
	_, _ = c.Add(testProduct(3, "C", "3.00"), 1)

	c.Remove(2)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Product.ID)
	assert.Equal(t, 3, items[1].Product.ID)

	// Index stays consistent after the shift: re-adding 3 must merge.
	_, err := c.Add(testProduct(3, "C", "3.00"), 2)
	require.NoError(t, err)
	items = c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[1].Quantity)
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(1, "A", "1.00"), 1)

	c.Remove(99)
	assert.Equal(t, 1, c.Len())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(1, "A", "10.00"), 1)

	require.NoError(t, c.SetQuantity(1, 5))
	assert.Equal(t, 5, c.Items()[0].Quantity)
}

func TestSetQuantity_RejectsBelowOne(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(1, "A", "10.00"), 3)

	for _, q := range []int{0, -1, -100} {
		err := c.SetQuantity(1, q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}

	// Rejection leaves the cart unchanged.
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestSetQuantity_AbsentIsNoOp(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(1, "A", "10.00"), 1)

	require.NoError(t, c.SetQuantity(99, 5))
	assert.Equal(t, 1, c.Len())
}

func TestClear(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(1, "A", "10.00"), 1)
	_, _ = c.Add(testProduct(2, "B", "20.00"), 1)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, decimal.Zero.Equal(c.Subtotal()))

	// Cart stays usable after clearing.
	_, err := c.Add(testProduct(1, "A", "10.00"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestSubtotal_RecomputedFromContents(t *testing.T) {
	c := New()
	_, _ = c.Add(testProduct(1, "A", "10.00"), 2)
	_, _ = c.Add(testProduct(2, "B", "60.00"), 1)
	assert.True(t, decimal.RequireFromString("80.00").Equal(c.Subtotal()))

	require.NoError(t, c.SetQuantity(1, 1))
	assert.True(t, decimal.RequireFromString("70.00").Equal(c.Subtotal()))

	c.Remove(2)
	assert.True(t, decimal.RequireFromString("10.00").Equal(c.Subtotal()))
}

func TestSubtotal_Empty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(New().Subtotal()))
}

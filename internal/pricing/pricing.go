// Package pricing maps a cart subtotal to shipping, tax, and grand total under
// the store's fixed business rules. Everything here is a pure function of the
// subtotal.
package pricing

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = decimal.NewFromInt(50)
	// FlatShippingFee applies below the free-shipping threshold.
	FlatShippingFee = decimal.RequireFromString("4.99")
	// TaxRate is the flat tax rate applied to the subtotal.
	TaxRate = decimal.RequireFromString("0.07")
)

// Shipping returns the shipping fee for the given subtotal: zero at or above
// the free-shipping threshold, the flat fee below it.
func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// Tax returns the flat-rate tax on the given subtotal.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

// GrandTotal returns subtotal + shipping + tax.
func GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(Shipping(subtotal)).Add(Tax(subtotal))
}

// Quote breaks a subtotal down into the line items a checkout page displays.
// Total always equals Subtotal + Shipping + Tax exactly.
type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// NewQuote prices the given subtotal.
func NewQuote(subtotal decimal.Decimal) Quote {
	shipping := Shipping(subtotal)
	tax := Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// RemainingForFreeShipping returns how much more the customer must spend to
// qualify for free shipping, or zero if they already do.
func (q Quote) RemainingForFreeShipping() decimal.Decimal {
	remaining := FreeShippingThreshold.Sub(q.Subtotal)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

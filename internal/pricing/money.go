package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money pairs an amount with its currency for display. Amounts are rounded to
// currency precision here and nowhere earlier.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// USD wraps an amount in US dollars.
func USD(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: currency.USD}
}

// String renders the amount at two decimal places with its currency code,
// e.g. "USD 15.69".
func (m Money) String() string {
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}

// DisplayQuote is a Quote rounded and tagged for presentation.
type DisplayQuote struct {
	Subtotal Money
	Shipping Money
	Tax      Money
	Total    Money
}

// Display converts the quote to USD display values.
func (q Quote) Display() DisplayQuote {
	return DisplayQuote{
		Subtotal: USD(q.Subtotal.Round(2)),
		Shipping: USD(q.Shipping.Round(2)),
		Tax:      USD(q.Tax.Round(2)),
		Total:    USD(q.Total.Round(2)),
	}
}

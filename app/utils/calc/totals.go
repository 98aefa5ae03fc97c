package calc

import (
	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/shopspring/decimal"
)

// Totals is the payable breakdown for a cart.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ShippingCost is always zero: shipping is free storewide and no tax
// is applied. The earlier flat-fee-plus-tax scheme was dropped as a
// product decision and must not come back.
func ShippingCost() decimal.Decimal {
	return decimal.Zero
}

// OrderTotals aggregates line totals into a grand total. The discount
// is a flat amount from an applied promo code; it is clamped so the
// total never goes below zero however large the code's value is.
func OrderTotals(lines []models.CartLine, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line))
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	shipping := ShippingCost()
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
	}
}

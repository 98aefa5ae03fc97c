package calc

import (
	"github.com/mkhalid-dev/rukhsar-storefront/app/models"
	"github.com/shopspring/decimal"
)

// EffectiveUnitPrice is the one price rule for the whole pipeline:
// an on-sale line with a defined current price is charged the current
// price, anything else the list price. Cart view, checkout view and
// order summary all go through here.
func EffectiveUnitPrice(line models.CartLine) decimal.Decimal {
	if line.Kind == models.VariantOnSale && line.Sale != nil {
		return line.Sale.CurrentPrice
	}
	return line.ListPrice
}

// LineTotal is the effective unit price times the requested quantity.
func LineTotal(line models.CartLine) decimal.Decimal {
	return EffectiveUnitPrice(line).Mul(decimal.NewFromInt(int64(line.QuantityRequested)))
}

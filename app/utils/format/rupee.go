package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Prices are rendered with a fixed "Rs." prefix everywhere.
var rupees = accounting.Accounting{Symbol: "Rs. ", Precision: 0, Thousand: ","}

func Rupees(amount decimal.Decimal) string {
	return rupees.FormatMoneyDecimal(amount)
}

package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is printed in place of optional fields that were left blank.
const NotAvailable = "N/A"

// FormatAmount renders an amount with exactly 2 decimal places.
// Halves are rounded away from zero (0.125 -> 0.13), which for the
// non-negative amounts of an estimate is plain round-half-up. Every output
// (PDF, Excel, HTML, share text) goes through this function.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatMoney prefixes the formatted amount with the currency symbol.
func FormatMoney(currency Currency, amount decimal.Decimal) string {
	return string(currency) + FormatAmount(amount)
}

// FormatPrice formats a unit price held as float64.
func FormatPrice(currency Currency, price float64) string {
	return FormatMoney(currency, decimal.NewFromFloat(price))
}

// FormatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2
// decimal places, rounded the same way as amounts.
func FormatQty(qty float64) string {
	d := decimal.NewFromFloat(qty)
	if d.IsInteger() {
		return d.String()
	}
	return FormatAmount(d)
}

// FormatQtyUnit renders "{quantity} {unit}", e.g. "100 ft".
func FormatQtyUnit(item MaterialItem) string {
	return FormatQty(item.Quantity) + " " + string(item.Unit)
}

// OrNotAvailable returns s, or "N/A" when s is blank.
func OrNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// Package services provides the estimate core: materials, pricing, the
// estimate aggregate and the documents generated from it.
package services

import "github.com/shopspring/decimal"

// LineTotal returns quantity x unit price for a single material.
func LineTotal(item MaterialItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.Price))
}

// GrandTotal sums the line totals of all items. No rounding happens here;
// amounts are only rounded when formatted for display.
func GrandTotal(items []MaterialItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

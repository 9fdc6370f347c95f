package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Branding holds the fixed texts printed on every exported document.
type Branding struct {
	Title       string
	Subtitle    string
	ThankYou    string
	Attribution string
}

// DefaultBranding returns the texts used when no settings override them.
func DefaultBranding() Branding {
	return Branding{
		Title:       "Electrical Estimate",
		Subtitle:    "Professional Electrical Services",
		ThankYou:    "Thank you for your business!",
		Attribution: "Generated with Electrical Estimate App",
	}
}

// ExportRow is one material as it appears in the table of an exported document.
type ExportRow struct {
	Index     int
	Material  string
	Brand     string // brand or "N/A"
	QtyUnit   string // "{quantity} {unit}"
	Quantity  float64
	Unit      string
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	PriceText string // currency-prefixed, 2 decimals
	TotalText string // currency-prefixed, 2 decimals
}

// ExportData is the layout-ready view of an estimate shared by the PDF and
// Excel renderers.
type ExportData struct {
	Branding    Branding
	Number      string
	Date        string
	Currency    Currency
	ClientLines []string // blank client fields are left out entirely
	MetaLines   []string
	Rows        []ExportRow
	Total       decimal.Decimal
	TotalText   string
}

// BuildExportData flattens an estimate into ExportData. Rows follow catalog
// order; an estimate without items yields an empty Rows slice.
func BuildExportData(e *Estimate, branding Branding) ExportData {
	var clientLines []string
	if e.ClientName != "" {
		clientLines = append(clientLines, fmt.Sprintf("Client: %s", e.ClientName))
	}
	if e.ClientEmail != "" {
		clientLines = append(clientLines, fmt.Sprintf("Email: %s", e.ClientEmail))
	}

	rows := make([]ExportRow, 0, len(e.Items))
	for i, item := range e.Items {
		unitPrice := decimal.NewFromFloat(item.Price)
		lineTotal := LineTotal(item)
		rows = append(rows, ExportRow{
			Index:     i + 1,
			Material:  item.Name,
			Brand:     OrNotAvailable(item.Brand),
			QtyUnit:   FormatQtyUnit(item),
			Quantity:  item.Quantity,
			Unit:      string(item.Unit),
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
			PriceText: FormatMoney(e.Currency, unitPrice),
			TotalText: FormatMoney(e.Currency, lineTotal),
		})
	}

	total := e.Total()
	return ExportData{
		Branding:    branding,
		Number:      e.Number,
		Date:        e.Date,
		Currency:    e.Currency,
		ClientLines: clientLines,
		MetaLines: []string{
			fmt.Sprintf("Estimate #: %s", e.Number),
			fmt.Sprintf("Date: %s", e.Date),
			fmt.Sprintf("Currency: %s", e.Currency),
		},
		Rows:      rows,
		Total:     total,
		TotalText: FormatMoney(e.Currency, total),
	}
}

package services

import (
	"bytes"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

var (
	electricBlue = &props.Color{Red: 16, Green: 145, Blue: 234}
	mutedGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	stripeBlue   = &props.Color{Red: 240, Green: 247, Blue: 255}
	white        = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Column widths of the material table (12-column grid).
const (
	colMaterial  = 4
	colBrand     = 2
	colQuantity  = 2
	colUnitPrice = 2
	colTotal     = 2
)

// GenerateEstimatePDF lays out an estimate on A4 pages using maroto/v2 and
// returns the raw PDF bytes. The table paginates on its own when it runs past
// the page height, repeating its header row on every continuation page. An
// estimate without items still renders, with an empty table body.
func GenerateEstimatePDF(e *Estimate, branding Branding) ([]byte, error) {
	m, err := buildEstimateDocument(BuildExportData(e, branding))
	if err != nil {
		return nil, err
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, &RenderError{Op: "PDF", Err: err}
	}

	return doc.GetBytes(), nil
}

func buildEstimateDocument(data ExportData) (core.Maroto, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).
		WithTopMargin(15).
		WithRightMargin(20).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addTitle(m, data)
	addClientAndMeta(m, data)

	// A registered header is drawn at the current position and again at the
	// top of each page break, so it goes in after the title block.
	if err := m.RegisterHeader(itemsTableHeader()); err != nil {
		return nil, &RenderError{Op: "PDF", Err: err}
	}
	for i, r := range data.Rows {
		addItemsTableRow(m, r, i%2 == 1)
	}
	// Totals and footer spilling onto a new page get no table header.
	if err := m.RegisterHeader(); err != nil {
		return nil, &RenderError{Op: "PDF", Err: err}
	}

	addTotal(m, data)
	addThankYouFooter(m, data)
	addFinePrint(m, data)
	return m, nil
}

// addTitle adds the centered document title, subtitle and a rule below them.
func addTitle(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(data.Branding.Title, props.Text{
					Size:  20,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: electricBlue,
				}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(data.Branding.Subtitle, props.Text{
					Size:  10,
					Align: align.Center,
					Color: mutedGray,
				}),
			),
		),
		row.New(4).Add(
			col.New(12).Add(line.New(props.Line{Color: electricBlue, Thickness: 0.4})),
		),
	)
}

// addClientAndMeta puts client details on the left and estimate metadata on
// the right of the same band. Missing client lines are skipped, not padded.
func addClientAndMeta(m core.Maroto, data ExportData) {
	leftStyle := props.Text{Size: 11, Align: align.Left}
	rightStyle := props.Text{Size: 11, Align: align.Right}

	lines := len(data.MetaLines)
	if len(data.ClientLines) > lines {
		lines = len(data.ClientLines)
	}
	for i := 0; i < lines; i++ {
		left := col.New(7)
		if i < len(data.ClientLines) {
			left.Add(text.New(data.ClientLines[i], leftStyle))
		}
		right := col.New(5)
		if i < len(data.MetaLines) {
			right.Add(text.New(data.MetaLines[i], rightStyle))
		}
		m.AddRows(row.New(7).Add(left, right))
	}

	m.AddRows(row.New(5))
}

// itemsTableHeader is the column header row of the materials table.
func itemsTableHeader() core.Row {
	headerText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: white,
		Top:   1.5,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerTextLeft.Left = 1.5

	headerCell := &props.Cell{BackgroundColor: electricBlue}

	return row.New(8).Add(
		col.New(colMaterial).Add(text.New("Material", headerTextLeft)).WithStyle(headerCell),
		col.New(colBrand).Add(text.New("Brand/Standard", headerText)).WithStyle(headerCell),
		col.New(colQuantity).Add(text.New("Quantity", headerText)).WithStyle(headerCell),
		col.New(colUnitPrice).Add(text.New("Unit Price", headerText)).WithStyle(headerCell),
		col.New(colTotal).Add(text.New("Total", headerText)).WithStyle(headerCell),
	)
}

// addItemsTableRow adds a single material row; odd rows are shaded.
func addItemsTableRow(m core.Maroto, r ExportRow, shaded bool) {
	baseText := props.Text{Size: 9, Align: align.Center, Top: 1.5}
	leftText := baseText
	leftText.Align = align.Left
	leftText.Left = 1.5
	rightText := baseText
	rightText.Align = align.Right
	rightText.Right = 1.5

	cols := []core.Col{
		col.New(colMaterial).Add(text.New(r.Material, leftText)),
		col.New(colBrand).Add(text.New(r.Brand, baseText)),
		col.New(colQuantity).Add(text.New(r.QtyUnit, baseText)),
		col.New(colUnitPrice).Add(text.New(r.PriceText, rightText)),
		col.New(colTotal).Add(text.New(r.TotalText, rightText)),
	}
	if shaded {
		cell := &props.Cell{BackgroundColor: stripeBlue}
		for i, c := range cols {
			cols[i] = c.WithStyle(cell)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addTotal adds the emphasized "Total Amount:" line under the table.
func addTotal(m core.Maroto, data ExportData) {
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(9).Add(
			col.New(8).Add(
				text.New("Total Amount:", props.Text{
					Size:  11,
					Align: align.Right,
					Top:   1,
				}),
			),
			col.New(4).Add(
				text.New(data.TotalText, props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Right,
					Top:   1,
				}),
			),
		),
	)
}

// addThankYouFooter adds the centered thank-you and attribution lines.
func addThankYouFooter(m core.Maroto, data ExportData) {
	footerStyle := props.Text{Size: 9, Align: align.Center, Color: mutedGray}

	m.AddRows(row.New(8))
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New(data.Branding.ThankYou, footerStyle))),
		row.New(5).Add(col.New(12).Add(text.New(data.Branding.Attribution, footerStyle))),
	)
}

// addFinePrint repeats the estimate number in small print at the end.
func addFinePrint(m core.Maroto, data ExportData) {
	m.AddRows(row.New(3))
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Reference: %s", data.Number), props.Text{
					Size:  7,
					Align: align.Center,
					Color: &props.Color{Red: 140, Green: 140, Blue: 140},
				}),
			),
		),
	)
}

// PDFPageCount reports the number of pages of a generated PDF.
func PDFPageCount(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), nil)
	if err != nil {
		return 0, fmt.Errorf("count PDF pages: %w", err)
	}
	return n, nil
}

package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel creates an xlsx workbook with the estimate table and
// returns the file contents. Money cells hold numbers formatted with the
// estimate's currency symbol so the sheet stays usable for further sums.
func GenerateEstimateExcel(e *Estimate, branding Branding) ([]byte, error) {
	data := BuildExportData(e, branding)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := data.Number
	if sheetName == "" {
		sheetName = "Estimate"
	}
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, excelError(fmt.Errorf("set sheet name: %w", err))
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 36, 20, 10, 8, 14, 14}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, excelError(fmt.Errorf("set col width %s: %w", c, err))
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "#1091EA"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, excelError(fmt.Errorf("create title style: %w", err))
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1091EA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, excelError(fmt.Errorf("create header style: %w", err))
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, excelError(fmt.Errorf("create body style: %w", err))
	}

	moneyFormat := fmt.Sprintf(`"%s"#,##0.00`, data.Currency)
	moneyStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &moneyFormat,
	})
	if err != nil {
		return nil, excelError(fmt.Errorf("create money style: %w", err))
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 12},
		CustomNumFmt: &moneyFormat,
	})
	if err != nil {
		return nil, excelError(fmt.Errorf("create total style: %w", err))
	}

	// ── Header block ────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, excelError(fmt.Errorf("merge title: %w", err))
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Branding.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// Client lines in column B, metadata in column F, starting at row 3.
	for i, l := range data.ClientLines {
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+3), sanitizeExcelCell(l))
	}
	for i, l := range data.MetaLines {
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", i+3), sanitizeExcelCell(l))
	}
	if code := data.Currency.ISOCode(); code != "" {
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", len(data.MetaLines)+2), code)
	}

	// ── Table ───────────────────────────────────────────────────────────

	headerRow := 3 + max(len(data.ClientLines), len(data.MetaLines)) + 1
	headers := []string{"#", "Material", "Brand/Standard", "Quantity", "Unit", "Unit Price", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], headerRow), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	row := headerRow + 1
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, r.Index)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Material))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Brand))
		f.SetCellValue(sheetName, "D"+rowStr, r.Quantity)
		f.SetCellValue(sheetName, "E"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheetName, "F"+rowStr, r.UnitPrice.InexactFloat64())
		f.SetCellValue(sheetName, "G"+rowStr, r.LineTotal.InexactFloat64())
		f.SetCellStyle(sheetName, "A"+rowStr, "E"+rowStr, bodyStyle)
		f.SetCellStyle(sheetName, "F"+rowStr, "G"+rowStr, moneyStyle)
		row++
	}

	// ── Total ───────────────────────────────────────────────────────────

	row++
	totalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+totalRow, "Total Amount:")
	f.SetCellValue(sheetName, "G"+totalRow, data.Total.InexactFloat64())
	f.SetCellStyle(sheetName, "F"+totalRow, "G"+totalRow, totalStyle)

	row += 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), data.Branding.ThankYou)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row+1), data.Branding.Attribution)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, excelError(fmt.Errorf("write excel: %w", err))
	}

	return buf.Bytes(), nil
}

func excelError(err error) error {
	return &RenderError{Op: "Excel file", Err: err}
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}

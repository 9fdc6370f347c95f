package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ItemField describes one column of the item file for the template and its
// instructions sheet.
type ItemField struct {
	Label       string
	Required    bool
	FormatRule  string
	Description string
	Example     any
}

// ItemFields lists the item file columns in template order.
var ItemFields = []ItemField{
	{"Name", true, "Text", "Material name as it appears on the estimate", "14/2 Romex Wire"},
	{"Quantity", true, "Number greater than 0", "How many units are needed", 100},
	{"Unit", false, "pcs, ft, m, box or roll", "Unit of measure; pcs when empty", "ft"},
	{"Price", false, "Number, 0 or more", "Price per unit", 0.45},
	{"Cable", false, "yes or no", "Whether the material is a cable", "yes"},
	{"Brand", false, "Text", "Brand, or the cable standard (required for cables)", "Nexans"},
}

// GenerateItemsTemplate creates a downloadable .xlsx template with the item
// file header row, one example line and an instructions sheet.
func GenerateItemsTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Materials"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1091EA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cols := columnLetters(len(ItemFields))
	widths := []float64{32, 10, 8, 10, 8, 20}
	for i, field := range ItemFields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		f.SetCellValue(sheet, cols[i]+"1", label)
		f.SetCellValue(sheet, cols[i]+"2", field.Example)
		f.SetColWidth(sheet, cols[i], cols[i], widths[i])
	}
	f.SetCellStyle(sheet, cols[0]+"1", cols[len(cols)-1]+"1", headerStyle)
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if err := addInstructionsSheet(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// addInstructionsSheet adds a second sheet describing every column.
func addInstructionsSheet(f *excelize.File) error {
	sheet := "Instructions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create instructions sheet: %w", err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	f.SetCellValue(sheet, "A1", "Material Import - Instructions")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	cols := columnLetters(5)
	for i, h := range []string{"Column", "Required?", "Format Rule", "Description", "Example"} {
		cell := cols[i] + "3"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, field := range ItemFields {
		row := fmt.Sprintf("%d", i+4)
		req := "Optional"
		if field.Required {
			req = "Required"
		}
		f.SetCellValue(sheet, cols[0]+row, field.Label)
		f.SetCellValue(sheet, cols[1]+row, req)
		f.SetCellValue(sheet, cols[2]+row, field.FormatRule)
		f.SetCellValue(sheet, cols[3]+row, field.Description)
		f.SetCellValue(sheet, cols[4]+row, field.Example)
	}

	for i, w := range []float64{14, 12, 26, 50, 20} {
		f.SetColWidth(sheet, cols[i], cols[i], w)
	}
	return nil
}

// GenerateImportErrorReport creates a downloadable .xlsx listing the rows
// that were skipped during an import.
func GenerateImportErrorReport(errs []ImportError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errs {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA, AB ...
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}

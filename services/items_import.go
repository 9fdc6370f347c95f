package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// MaxImportSize caps the size of an uploaded item file.
const MaxImportSize = 5 << 20

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportError is a single field-level problem on one row of an item file.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is returned after parsing and validating an item file.
// Items holds the valid rows in file order; rows with errors are skipped.
type ImportResult struct {
	TotalRows int             `json:"total_rows"`
	Items     []MaterialInput `json:"-"`
	Errors    []ImportError   `json:"errors"`
}

// ErrorRows returns the number of distinct rows that had errors.
func (r *ImportResult) ErrorRows() int {
	rows := make(map[int]bool, len(r.Errors))
	for _, e := range r.Errors {
		rows[e.Row] = true
	}
	return len(rows)
}

// Item file columns; header matching is case-insensitive.
const (
	importColName     = "name"
	importColQuantity = "quantity"
	importColUnit     = "unit"
	importColPrice    = "price"
	importColCable    = "cable"
	importColBrand    = "brand"
)

var importHeaderAliases = map[string]string{
	"name":           importColName,
	"material":       importColName,
	"material name":  importColName,
	"quantity":       importColQuantity,
	"qty":            importColQuantity,
	"unit":           importColUnit,
	"uom":            importColUnit,
	"price":          importColPrice,
	"unit price":     importColPrice,
	"cable":          importColCable,
	"is cable":       importColCable,
	"brand":          importColBrand,
	"standard":       importColBrand,
	"brand/standard": importColBrand,
}

var importFieldLabels = map[string]string{
	"name":     "Name",
	"quantity": "Quantity",
	"price":    "Price",
	"brand":    "Brand",
}

// ParseItemsFile reads a CSV or XLSX item file. The format is detected from
// the content; the file name only serves as a fallback for plain text.
func ParseItemsFile(r io.Reader, fileName string) (*ImportResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read item file: %w", err)
	}
	if len(raw) > MaxImportSize {
		return nil, newValidationError("file", "The file is too large (max 5 MB)")
	}

	var headers []string
	var dataRows [][]string

	switch kind := detectItemsFormat(raw, fileName); kind {
	case "xlsx":
		headers, dataRows, err = parseExcel(bytes.NewReader(raw))
	case "csv":
		headers, dataRows, err = parseCSV(bytes.NewReader(raw))
	default:
		return nil, newValidationError("file", "Unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, newValidationError("file", err.Error())
	}

	columnKeys := mapItemHeaders(headers)
	if !containsKey(columnKeys, importColName) {
		return nil, newValidationError("file", "The file needs at least a Name column")
	}

	result := &ImportResult{TotalRows: len(dataRows)}
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		values := make(map[string]string, len(columnKeys))
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			values[key] = strings.TrimSpace(row[colIdx])
		}
		if isBlankRow(values) {
			result.TotalRows--
			continue
		}

		in, rowErrors := parseItemRow(rowNum, values)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		result.Items = append(result.Items, in)
	}

	return result, nil
}

// detectItemsFormat sniffs the content with mimetype and returns "xlsx",
// "csv" or "".
func detectItemsFormat(raw []byte, fileName string) string {
	// Workbooks written by some tools only sniff as a generic zip.
	for m := mimetype.Detect(raw); m != nil; m = m.Parent() {
		switch {
		case m.Is(xlsxMIME), m.Is("application/zip"):
			return "xlsx"
		case m.Is("text/csv"), m.Is("text/plain"):
			return "csv"
		}
	}
	if strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return "csv"
	}
	return ""
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, errors.New("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, errors.New("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapItemHeaders maps uploaded column headers to column keys. Unknown
// columns map to "".
func mapItemHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		mapped[i] = importHeaderAliases[norm]
	}
	return mapped
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func isBlankRow(values map[string]string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// trimCurrencySymbol drops a supported currency symbol written before or
// after a price, as in "€12.50" or "12.50 €".
func trimCurrencySymbol(v string) string {
	v = strings.TrimSpace(v)
	for _, c := range CurrencyOptions {
		sym := string(c)
		if strings.HasPrefix(v, sym) {
			return strings.TrimSpace(strings.TrimPrefix(v, sym))
		}
		if strings.HasSuffix(v, sym) {
			return strings.TrimSpace(strings.TrimSuffix(v, sym))
		}
	}
	return v
}

// parseItemRow converts one row into a MaterialInput and validates it the
// same way the material form does.
func parseItemRow(rowNum int, values map[string]string) (MaterialInput, []ImportError) {
	var errs []ImportError

	in := MaterialInput{
		Name:  values[importColName],
		Unit:  values[importColUnit],
		Brand: values[importColBrand],
	}

	if v := values[importColQuantity]; v != "" {
		qty, err := cast.ToFloat64E(v)
		if err != nil {
			errs = append(errs, ImportError{Row: rowNum, Field: "Quantity", Message: "Quantity must be a number"})
		}
		in.Quantity = qty
	}

	if v := trimCurrencySymbol(values[importColPrice]); v != "" {
		price, err := cast.ToFloat64E(v)
		if err != nil {
			errs = append(errs, ImportError{Row: rowNum, Field: "Price", Message: "Price must be a number"})
		}
		in.Price = price
	}

	if v := strings.ToLower(values[importColCable]); v != "" {
		switch v {
		case "yes", "y":
			in.IsCable = true
		case "no", "n":
		default:
			isCable, err := cast.ToBoolE(v)
			if err != nil {
				errs = append(errs, ImportError{Row: rowNum, Field: "Cable", Message: "Cable must be yes or no"})
			}
			in.IsCable = isCable
		}
	}
	if len(errs) > 0 {
		return in, errs
	}

	if err := in.Validate(); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return in, []ImportError{{Row: rowNum, Field: "Row", Message: err.Error()}}
		}
		fields := make([]string, 0, len(ve.Fields))
		for f := range ve.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			label := importFieldLabels[f]
			if label == "" {
				label = f
			}
			errs = append(errs, ImportError{Row: rowNum, Field: label, Message: ve.Fields[f]})
		}
	}
	return in, errs
}

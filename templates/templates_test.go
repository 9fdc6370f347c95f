package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func sampleView() EstimateView {
	return EstimateView{
		Title:       "Electrical Estimate",
		Subtitle:    "Professional Electrical Services",
		Number:      "EST-ABCZ09",
		Date:        "October 16th, 2026",
		ClientName:  `Jane "JD" Doe`,
		ClientEmail: "jane@example.com",
		Currency:    "$",
		Currencies:  []Option{{Value: "$", Label: "$ (USD)", Selected: true}, {Value: "€", Label: "€ (EUR)"}},
		Units:       []Option{{Value: "pcs", Label: "pcs"}, {Value: "ft", Label: "ft"}},
		Items: []ItemRow{
			{ID: "a1", Name: "14/2 Romex Wire", Brand: "Nexans", QtyUnit: "100 ft", PriceText: "$0.45", TotalText: "$45.00", IsCable: true},
			{ID: "b2", Name: "<Outlet>", Brand: "N/A", QtyUnit: "10 pcs", PriceText: "$2.50", TotalText: "$25.00"},
		},
		TotalText: "$70.00",
	}
}

func TestEstimatePage(t *testing.T) {
	html := render(t, EstimatePage(sampleView()))
	if !strings.HasPrefix(strings.ToLower(html), "<!doctype html>") {
		t.Errorf("page must start with a doctype, got %q", html[:min(len(html), 20)])
	}

	for _, frag := range []string{
		"<title>Electrical Estimate</title>",
		"Professional Electrical Services",
		"EST-ABCZ09",
		"October 16th, 2026",
		`value="Jane &#34;JD&#34; Doe"`,
		`<option value="$" selected>$ (USD)</option>`,
		`id="materials"`,
		`hx-post="/items/import"`,
		`id="toast-container"`,
	} {
		if !strings.Contains(html, frag) {
			t.Errorf("page missing %q", frag)
		}
	}
}

func TestMaterialsSection(t *testing.T) {
	html := render(t, MaterialsSection(sampleView()))

	for _, frag := range []string{
		"Materials (2)",
		`id="item-a1"`,
		`hx-delete="/items/a1"`,
		"&lt;Outlet&gt;",
		"Total: <strong>$70.00</strong>",
		`href="/export/pdf"`,
		`hx-get="/share/whatsapp"`,
	} {
		if !strings.Contains(html, frag) {
			t.Errorf("section missing %q", frag)
		}
	}
	if !strings.Contains(html, `<td>14/2 Romex Wire <span class="badge">cable</span></td>`) {
		t.Error("cable materials should carry a badge")
	}
	if strings.Contains(html, "<Outlet>") {
		t.Error("material names must be escaped")
	}
}

func TestMaterialsSection_Empty(t *testing.T) {
	v := sampleView()
	v.Items = nil
	v.TotalText = "$0.00"

	html := render(t, MaterialsSection(v))
	if !strings.Contains(html, "No materials added yet") {
		t.Error("expected empty state")
	}
	if strings.Contains(html, `href="/export/pdf"`) {
		t.Error("export must be disabled without materials")
	}
	if !strings.Contains(html, `<span class="button disabled" aria-disabled="true">Download PDF</span>`) {
		t.Error("expected a disabled PDF action")
	}
}

func TestImportSummary(t *testing.T) {
	html := render(t, ImportSummary(ImportReport{
		FileName:  "items.csv",
		TotalRows: 3,
		Added:     2,
		Errors:    []ImportRowError{{Row: 4, Field: "Quantity", Message: "Quantity must be a number"}},
	}))

	for _, frag := range []string{"items.csv: 2 of 3 rows added", "<td>4</td>", "Quantity must be a number"} {
		if !strings.Contains(html, frag) {
			t.Errorf("summary missing %q", frag)
		}
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/johnfercher/go-tree/node"
	"github.com/johnfercher/maroto/v2/pkg/core"
)

func TestGenerateEstimatePDF_Basic(t *testing.T) {
	e := newTestEstimate(t)
	_ = e.Apply(SetClientName("Jane Doe"), SetClientEmail("jane@example.com"))
	e.AddItem(romexWire(t))
	e.AddItem(mustItem(t, MaterialInput{Name: "Outlet", Quantity: 10, Unit: "pcs", Price: 2.5}))

	result, err := GenerateEstimatePDF(e, DefaultBranding())
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}

	pages, err := PDFPageCount(result)
	if err != nil {
		t.Fatalf("PDFPageCount() error = %v", err)
	}
	if pages != 1 {
		t.Errorf("expected 1 page, got %d", pages)
	}
}

func TestGenerateEstimatePDF_EmptyItems(t *testing.T) {
	e := newTestEstimate(t)

	result, err := GenerateEstimatePDF(e, DefaultBranding())
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
}

func TestGenerateEstimatePDF_Paginates(t *testing.T) {
	e := newTestEstimate(t)
	for i := 0; i < 120; i++ {
		e.AddItem(mustItem(t, MaterialInput{
			Name:     fmt.Sprintf("Breaker %d", i+1),
			Quantity: 1,
			Unit:     "pcs",
			Price:    12.75,
		}))
	}

	result, err := GenerateEstimatePDF(e, DefaultBranding())
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}

	pages, err := PDFPageCount(result)
	if err != nil {
		t.Fatalf("PDFPageCount() error = %v", err)
	}
	if pages < 2 {
		t.Errorf("expected the table to flow onto more pages, got %d page(s)", pages)
	}
}

// structureTexts collects the text values of a maroto structure in order.
func structureTexts(n *node.Node[core.Structure]) []string {
	var out []string
	if data := n.GetData(); data.Type == "text" {
		if v, ok := data.Value.(string); ok {
			out = append(out, v)
		}
	}
	for _, next := range n.GetNexts() {
		out = append(out, structureTexts(next)...)
	}
	return out
}

func indexOf(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

func TestGenerateEstimatePDF_RepeatsTableHeader(t *testing.T) {
	e := newTestEstimate(t)
	for i := 0; i < 120; i++ {
		e.AddItem(mustItem(t, MaterialInput{
			Name:     fmt.Sprintf("Breaker %d", i+1),
			Quantity: 1,
			Unit:     "pcs",
			Price:    12.75,
		}))
	}

	m, err := buildEstimateDocument(BuildExportData(e, DefaultBranding()))
	if err != nil {
		t.Fatalf("buildEstimateDocument() error = %v", err)
	}
	pages := m.GetStructure().GetNexts()
	if len(pages) < 2 {
		t.Fatalf("expected several pages, got %d", len(pages))
	}

	for i, p := range pages {
		texts := structureTexts(p)
		var headers, items int
		for _, v := range texts {
			switch {
			case v == "Material":
				headers++
			case strings.HasPrefix(v, "Breaker "):
				items++
			}
		}
		if items > 0 && headers != 1 {
			t.Errorf("page %d: %d item rows under %d header rows, want 1 header", i+1, items, headers)
		}
		if items == 0 && headers != 0 {
			t.Errorf("page %d: header row without item rows", i+1)
		}
	}

	first := structureTexts(pages[0])
	title := indexOf(first, DefaultBranding().Title)
	header := indexOf(first, "Material")
	if title < 0 || header < 0 || title > header {
		t.Errorf("first page must start with the title, then the table header (title at %d, header at %d)", title, header)
	}
}

func TestPDFPageCount_Invalid(t *testing.T) {
	_, err := PDFPageCount([]byte("not a pdf"))
	if err == nil {
		t.Fatal("expected error for invalid PDF")
	}
	var re *RenderError
	if errors.As(err, &re) {
		t.Error("page count errors are not render errors")
	}
}

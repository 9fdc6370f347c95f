package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportFilename(t *testing.T) {
	ts := time.UnixMilli(1760607000123)

	tests := []struct {
		number string
		ext    string
		want   string
	}{
		{"EST-ABCZ09", "pdf", "Electrical_Estimate_EST-ABCZ09_1760607000123.pdf"},
		{"EST-ABCZ09", "xlsx", "Electrical_Estimate_EST-ABCZ09_1760607000123.xlsx"},
		{"EST/1 2", "pdf", "Electrical_Estimate_EST-1-2_1760607000123.pdf"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.number, ts, tt.ext); got != tt.want {
			t.Errorf("ExportFilename(%q, %q) = %q, want %q", tt.number, tt.ext, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jane Doe", "Jane-Doe"},
		{`a\b:c/d`, "a-b-c-d"},
		{"EST-ABCZ09", "EST-ABCZ09"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSaveExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := SaveExport(dir, "estimate.pdf", []byte("%PDF-1.3"))
	if err != nil {
		t.Fatalf("SaveExport() error = %v", err)
	}
	if path != filepath.Join(dir, "estimate.pdf") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "%PDF-1.3" {
		t.Errorf("content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the final file, found %v", names)
	}
}

func TestSaveExport_Overwrites(t *testing.T) {
	dir := t.TempDir()

	if _, err := SaveExport(dir, "a.xlsx", []byte("first")); err != nil {
		t.Fatal(err)
	}
	path, err := SaveExport(dir, "a.xlsx", []byte("second"))
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}

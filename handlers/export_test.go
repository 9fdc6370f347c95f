package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estimatebuilder/services"
	"estimatebuilder/testhelpers"
)

func TestHandleExportPDF(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/export/pdf", nil)
	sess := newTestSession(t, env, req)
	seedItems(t, sess, romex, outlet)
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(env)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != pdfContentType {
		t.Errorf("Content-Type = %q", ct)
	}

	wantName := services.ExportFilename("EST-ABCZ09", testNow, "pdf")
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Errorf("Content-Disposition = %q, want filename %q", cd, wantName)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
	if pages, err := services.PDFPageCount(rec.Body.Bytes()); err != nil || pages != 1 {
		t.Errorf("PDFPageCount() = %d, %v; want 1 page", pages, err)
	}
}

func TestHandleExportPDF_Empty(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/export/pdf", nil)
	newTestSession(t, env, req)
	rec := httptest.NewRecorder()

	if err := HandleExportPDF(env)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	testhelpers.AssertErrorToast(t, rec.Header(), "Add at least one material to generate PDF")
}

func TestHandleExportExcel(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/export/excel", nil)
	sess := newTestSession(t, env, req)
	seedItems(t, sess, outlet)
	rec := httptest.NewRecorder()

	if err := HandleExportExcel(env)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasSuffix(cd, `.xlsx"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not an xlsx (zip) file")
	}
}

func TestHandleExportExcel_Empty(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/export/excel", nil)
	newTestSession(t, env, req)
	rec := httptest.NewRecorder()

	if err := HandleExportExcel(env)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

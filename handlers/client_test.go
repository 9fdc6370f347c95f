package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"estimatebuilder/services"
	"estimatebuilder/testhelpers"
)

func TestHandleUpdateClient(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{
		"client_name":  {"  Jane Doe "},
		"client_email": {"jane@example.com"},
		"currency":     {"€"},
	}
	req := testhelpers.NewFormRequest("/client", form)
	sess := newTestSession(t, env, req)
	seedItems(t, sess, outlet)
	rec := httptest.NewRecorder()

	if err := HandleUpdateClient(env)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	est := snapshot(sess)
	if est.ClientName != "Jane Doe" {
		t.Errorf("ClientName = %q", est.ClientName)
	}
	if est.ClientEmail != "jane@example.com" {
		t.Errorf("ClientEmail = %q", est.ClientEmail)
	}
	if est.Currency != "€" {
		t.Errorf("Currency = %q", est.Currency)
	}
	if est.Items[0].Price != 2.5 {
		t.Error("switching currency must not change prices")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "€2.50", "Total: <strong>€25.00</strong>")
}

func TestHandleUpdateClient_PartialForm(t *testing.T) {
	env := newTestEnv(t)
	req := testhelpers.NewFormRequest("/client", url.Values{"client_email": {"new@example.com"}})
	sess := newTestSession(t, env, req)
	_ = sess.With(func(est *services.Estimate) error {
		est.ClientName = "Kept"
		return nil
	})
	rec := httptest.NewRecorder()

	if err := HandleUpdateClient(env)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	est := snapshot(sess)
	if est.ClientName != "Kept" {
		t.Errorf("absent fields must be left alone, ClientName = %q", est.ClientName)
	}
	if est.ClientEmail != "new@example.com" {
		t.Errorf("ClientEmail = %q", est.ClientEmail)
	}
}

func TestHandleUpdateClient_UnknownCurrency(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{"client_name": {"Jane"}, "currency": {"XYZ"}}
	req := testhelpers.NewFormRequest("/client", form)
	sess := newTestSession(t, env, req)
	rec := httptest.NewRecorder()

	if err := HandleUpdateClient(env)(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	testhelpers.AssertErrorToast(t, rec.Header(), "Please choose one of the supported currencies")

	est := snapshot(sess)
	if est.ClientName != "" || est.Currency != "$" {
		t.Errorf("a rejected update must leave the estimate untouched, got %+v", est)
	}
}

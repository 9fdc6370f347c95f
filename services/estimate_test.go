package services

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewEstimate(t *testing.T) {
	e := newTestEstimate(t)

	if e.Number != "EST-ABCZ09" {
		t.Errorf("Number = %q", e.Number)
	}
	if !estimateNumberPattern.MatchString(e.Number) {
		t.Errorf("Number %q does not match EST-XXXXXX", e.Number)
	}
	if e.Date != "October 16th, 2026" {
		t.Errorf("Date = %q", e.Date)
	}
	if e.Currency != CurrencyDollar {
		t.Errorf("Currency = %q, want $", e.Currency)
	}
	if e.ClientName != "" || e.ClientEmail != "" {
		t.Error("expected blank client fields")
	}
	if !e.Empty() {
		t.Error("expected no items")
	}
	if !e.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v", e.CreatedAt)
	}
}

func TestEstimate_NumberAndDateStableAcrossMutations(t *testing.T) {
	e := newTestEstimate(t)
	number, date := e.Number, e.Date

	item := romexWire(t)
	e.AddItem(item)
	if err := e.Apply(SetClientName("Jane Doe"), SetClientEmail("jane@example.com"), SetCurrency("€")); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	e.RemoveItem(item.ID)

	if e.Number != number || e.Date != date {
		t.Errorf("number/date changed: %q %q -> %q %q", number, date, e.Number, e.Date)
	}
}

func TestEstimate_Apply(t *testing.T) {
	e := newTestEstimate(t)

	if err := e.Apply(SetClientName("  Jane Doe "), SetClientEmail("jane@example.com")); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if e.ClientName != "Jane Doe" {
		t.Errorf("ClientName = %q", e.ClientName)
	}
	if e.ClientEmail != "jane@example.com" {
		t.Errorf("ClientEmail = %q", e.ClientEmail)
	}
}

func TestEstimate_ApplyUnknownCurrencyLeavesEstimateUnchanged(t *testing.T) {
	e := newTestEstimate(t)

	err := e.Apply(SetClientName("Jane"), SetCurrency("₿"))
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("Apply() error = %v, want ErrUnknownCurrency", err)
	}
	if e.ClientName != "" {
		t.Errorf("ClientName = %q, want unchanged", e.ClientName)
	}
	if e.Currency != CurrencyDollar {
		t.Errorf("Currency = %q, want unchanged", e.Currency)
	}
}

func TestEstimate_ApplyNilUpdate(t *testing.T) {
	e := newTestEstimate(t)
	if err := e.Apply(nil); err == nil {
		t.Fatal("expected error for nil update")
	}
}

func TestEstimate_SwitchingCurrencyKeepsPrices(t *testing.T) {
	e := newTestEstimate(t)
	e.AddItem(romexWire(t))
	before := append(Catalog{}, e.Items...)

	if err := e.Apply(SetCurrency("£")); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if !reflect.DeepEqual(e.Items, before) {
		t.Errorf("items changed after currency switch: %v", e.Items)
	}
	if got := FormatMoney(e.Currency, e.Total()); got != "£45.00" {
		t.Errorf("total = %q, want £45.00", got)
	}
}

func TestEstimate_SetItemsReplacesWholesale(t *testing.T) {
	e := newTestEstimate(t)
	e.AddItem(romexWire(t))
	_ = e.Apply(SetClientName("Jane"))

	outlet := mustItem(t, MaterialInput{Name: "Outlet", Quantity: 10, Price: 2.5})
	items := []MaterialItem{outlet}
	e.SetItems(items)

	if len(e.Items) != 1 || e.Items[0].ID != outlet.ID {
		t.Errorf("Items = %v", e.Items)
	}
	if e.ClientName != "Jane" {
		t.Error("SetItems changed client name")
	}

	// the estimate must not alias the caller's slice
	items[0].Name = "changed"
	if e.Items[0].Name != "Outlet" {
		t.Error("SetItems kept a reference to the caller's slice")
	}
}

func TestRequireItems(t *testing.T) {
	e := newTestEstimate(t)

	err := RequireItems(e)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("RequireItems(empty) = %v, want *ValidationError", err)
	}
	if got := UserMessage(err); got != "Add at least one material to generate PDF" {
		t.Errorf("UserMessage() = %q", got)
	}

	e.AddItem(romexWire(t))
	if err := RequireItems(e); err != nil {
		t.Errorf("RequireItems(non-empty) = %v", err)
	}
}

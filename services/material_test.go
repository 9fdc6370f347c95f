package services

import (
	"errors"
	"math"
	"testing"
)

func TestNewMaterialItem_Valid(t *testing.T) {
	item := romexWire(t)

	if item.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if item.Name != "14/2 Romex Wire" {
		t.Errorf("Name = %q", item.Name)
	}
	if item.Unit != UnitFeet {
		t.Errorf("Unit = %q, want ft", item.Unit)
	}
	if item.Brand != "Nexans" {
		t.Errorf("Brand = %q, want Nexans", item.Brand)
	}
	if !item.IsCable {
		t.Error("expected IsCable")
	}
}

func TestNewMaterialItem_UniqueIDs(t *testing.T) {
	in := MaterialInput{Name: "Outlet", Quantity: 1, Price: 1}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		item := mustItem(t, in)
		if seen[item.ID] {
			t.Fatalf("duplicate id %q", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestNewMaterialItem_Defaults(t *testing.T) {
	item := mustItem(t, MaterialInput{Name: "  Outlet  ", Quantity: 2, Price: 0})

	if item.Name != "Outlet" {
		t.Errorf("Name = %q, want trimmed", item.Name)
	}
	if item.Unit != UnitPieces {
		t.Errorf("Unit = %q, want pcs", item.Unit)
	}
	if item.Brand != "" {
		t.Errorf("Brand = %q, want empty", item.Brand)
	}
}

func TestNewMaterialItem_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   MaterialInput
		field   string
		message string
	}{
		{"blank name", MaterialInput{Name: "   ", Quantity: 1, Price: 1}, "name", "Material name is required"},
		{"zero quantity", MaterialInput{Name: "Outlet", Quantity: 0, Price: 1}, "quantity", "Quantity must be greater than 0"},
		{"negative quantity", MaterialInput{Name: "Outlet", Quantity: -3, Price: 1}, "quantity", "Quantity must be greater than 0"},
		{"negative price", MaterialInput{Name: "Outlet", Quantity: 1, Price: -0.01}, "price", "Price cannot be negative"},
		{"infinite quantity", MaterialInput{Name: "Outlet", Quantity: math.Inf(1), Price: 1}, "quantity", "Quantity must be a number"},
		{"negative infinite quantity", MaterialInput{Name: "Outlet", Quantity: math.Inf(-1), Price: 1}, "quantity", "Quantity must be a number"},
		{"NaN quantity", MaterialInput{Name: "Outlet", Quantity: math.NaN(), Price: 1}, "quantity", "Quantity must be a number"},
		{"infinite price", MaterialInput{Name: "Outlet", Quantity: 1, Price: math.Inf(1)}, "price", "Price must be a number"},
		{"cable without standard", MaterialInput{Name: "Cable", Quantity: 1, Price: 1, IsCable: true}, "brand", "Please select a cable standard"},
		{"cable other without text", MaterialInput{Name: "Cable", Quantity: 1, Price: 1, IsCable: true, CableStandard: "Other", OtherStandard: " "}, "brand", "Please select a cable standard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMaterialItem(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if got := ve.Fields[tt.field]; got != tt.message {
				t.Errorf("Fields[%q] = %q, want %q (all: %v)", tt.field, got, tt.message, ve.Fields)
			}
		})
	}
}

func TestMaterialInput_ResolvedBrand(t *testing.T) {
	tests := []struct {
		name  string
		input MaterialInput
		want  string
	}{
		{"generic brand", MaterialInput{Brand: " Leviton "}, "Leviton"},
		{"generic ignores standard", MaterialInput{CableStandard: "Nexans", Brand: "Eaton"}, "Eaton"},
		{"cable standard", MaterialInput{IsCable: true, CableStandard: "TROPICAL CABLES"}, "TROPICAL CABLES"},
		{"cable other", MaterialInput{IsCable: true, CableStandard: "Other", OtherStandard: "Kabelwerk"}, "Kabelwerk"},
		{"cable from brand column", MaterialInput{IsCable: true, Brand: "Reroy"}, "Reroy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.ResolvedBrand(); got != tt.want {
				t.Errorf("ResolvedBrand() = %q, want %q", got, tt.want)
			}
		})
	}
}

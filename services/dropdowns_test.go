package services

import "testing"

func TestUnitOptions(t *testing.T) {
	expected := []Unit{"pcs", "ft", "m", "box", "roll"}
	if len(UnitOptions) != len(expected) {
		t.Fatalf("expected %d unit options, got %d", len(expected), len(UnitOptions))
	}
	for i, v := range expected {
		if UnitOptions[i] != v {
			t.Errorf("UnitOptions[%d] = %q, want %q", i, UnitOptions[i], v)
		}
	}
}

func TestCableStandardOptions(t *testing.T) {
	if len(CableStandardOptions) == 0 {
		t.Fatal("CableStandardOptions should not be empty")
	}
	if last := CableStandardOptions[len(CableStandardOptions)-1]; last != CableStandardOther {
		t.Errorf("expected %q to be the last option, got %q", CableStandardOther, last)
	}
	seen := make(map[string]bool)
	for _, opt := range CableStandardOptions {
		if opt == "" {
			t.Error("CableStandardOptions contains empty string")
		}
		if seen[opt] {
			t.Errorf("duplicate cable standard %q", opt)
		}
		seen[opt] = true
	}
}

package services

import (
	"bytes"
	"testing"
	"time"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

var testNow = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

// fixedNumberSource always yields EST-ABCZ09.
func fixedNumberSource() *bytes.Reader {
	return bytes.NewReader([]byte{0, 1, 2, 25, 26, 35, 0, 0, 0, 0, 0, 0})
}

// newTestEstimate returns an empty estimate dated testNow with number EST-ABCZ09.
func newTestEstimate(t *testing.T) *Estimate {
	t.Helper()
	e, err := NewEstimate(testNow, fixedNumberSource())
	if err != nil {
		t.Fatalf("NewEstimate() error = %v", err)
	}
	return e
}

// mustItem validates in and fails the test on error.
func mustItem(t *testing.T, in MaterialInput) MaterialItem {
	t.Helper()
	item, err := NewMaterialItem(in)
	if err != nil {
		t.Fatalf("NewMaterialItem(%+v) error = %v", in, err)
	}
	return item
}

func romexWire(t *testing.T) MaterialItem {
	return mustItem(t, MaterialInput{
		Name:          "14/2 Romex Wire",
		Quantity:      100,
		Unit:          "ft",
		Price:         0.45,
		IsCable:       true,
		CableStandard: "Nexans",
	})
}

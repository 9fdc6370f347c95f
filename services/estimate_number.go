package services

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	estimateNumberPrefix   = "EST-"
	estimateNumberLength   = 6
	estimateNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateEstimateNumber returns "EST-" followed by 6 characters drawn
// uniformly from [A-Z0-9] using the bytes of r (crypto/rand in production).
// Bytes above the largest multiple of the alphabet size are discarded so
// that every character is equally likely.
func GenerateEstimateNumber(r io.Reader) (string, error) {
	const alphabetLen = len(estimateNumberAlphabet)
	limit := 256 - 256%alphabetLen

	out := make([]byte, 0, estimateNumberLength)
	buf := make([]byte, estimateNumberLength*2)
	for len(out) < estimateNumberLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("generate estimate number: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, estimateNumberAlphabet[int(b)%alphabetLen])
			if len(out) == estimateNumberLength {
				break
			}
		}
	}
	return estimateNumberPrefix + string(out), nil
}

// FormatEstimateDate returns the long calendar form used on estimates,
// e.g. "October 16th, 2026".
func FormatEstimateDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", t.Month(), humanize.Ordinal(t.Day()), t.Year())
}

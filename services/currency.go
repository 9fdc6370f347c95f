package services

import (
	"fmt"

	"golang.org/x/text/currency"
)

// Currency is the display symbol prefixed to every monetary value. The core
// never converts amounts; switching currency only changes the prefix.
type Currency string

const (
	CurrencyDollar Currency = "$"
	CurrencyEuro   Currency = "€"
	CurrencyPound  Currency = "£"
	CurrencyYen    Currency = "¥"
	CurrencyRupee  Currency = "₹"
	CurrencyFranc  Currency = "₣"
	CurrencyCedi   Currency = "₵"

	DefaultCurrency = CurrencyDollar
)

// CurrencyOptions is the supported set in selector order.
var CurrencyOptions = []Currency{
	CurrencyDollar,
	CurrencyEuro,
	CurrencyPound,
	CurrencyYen,
	CurrencyRupee,
	CurrencyFranc,
	CurrencyCedi,
}

var currencyUnits = map[Currency]currency.Unit{
	CurrencyDollar: currency.USD,
	CurrencyEuro:   currency.EUR,
	CurrencyPound:  currency.GBP,
	CurrencyYen:    currency.JPY,
	CurrencyRupee:  currency.INR,
	CurrencyFranc:  currency.CHF,
	CurrencyCedi:   currency.MustParseISO("GHS"),
}

// ParseCurrency accepts either a supported symbol or its ISO code
// ("GHS" is how the cedi was stored before it got its own glyph).
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if _, ok := currencyUnits[c]; ok {
		return c, nil
	}
	unit, err := currency.ParseISO(s)
	if err == nil {
		for sym, u := range currencyUnits {
			if u == unit {
				return sym, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}

// ISOCode returns the ISO 4217 code behind the symbol, e.g. "EUR".
func (c Currency) ISOCode() string {
	if u, ok := currencyUnits[c]; ok {
		return u.String()
	}
	return ""
}

// Label is the selector text, e.g. "€ (EUR)".
func (c Currency) Label() string {
	if code := c.ISOCode(); code != "" {
		return fmt.Sprintf("%s (%s)", c, code)
	}
	return string(c)
}

package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estimate is the aggregate every document is generated from. It is created
// once per session; Number, Date and CreatedAt never change afterwards while
// the client fields, currency and items are updated in place.
type Estimate struct {
	ClientName  string
	ClientEmail string
	Items       Catalog
	Date        string
	Number      string
	Currency    Currency
	CreatedAt   time.Time
}

// NewEstimate starts an empty estimate dated now, with a number drawn from
// rnd and the default currency.
func NewEstimate(now time.Time, rnd io.Reader) (*Estimate, error) {
	number, err := GenerateEstimateNumber(rnd)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		Items:     Catalog{},
		Date:      FormatEstimateDate(now),
		Number:    number,
		Currency:  DefaultCurrency,
		CreatedAt: now,
	}, nil
}

// SetItems replaces the item list wholesale. All other fields are kept.
func (e *Estimate) SetItems(items []MaterialItem) {
	e.Items = append(Catalog{}, items...)
}

// AddItem appends a validated item.
func (e *Estimate) AddItem(item MaterialItem) {
	e.SetItems(e.Items.Add(item))
}

// RemoveItem removes the item with id, if present.
func (e *Estimate) RemoveItem(id string) {
	e.SetItems(e.Items.Remove(id))
}

// Total is the grand total of all items.
func (e *Estimate) Total() decimal.Decimal {
	return e.Items.Total()
}

// Empty reports whether the estimate has no materials yet.
func (e *Estimate) Empty() bool {
	return len(e.Items) == 0
}

// Update is one of the edits the client form can make to an estimate:
// SetClientName, SetClientEmail or SetCurrency.
type Update interface {
	apply(e *Estimate) error
}

type SetClientName string

type SetClientEmail string

type SetCurrency Currency

func (u SetClientName) apply(e *Estimate) error {
	e.ClientName = strings.TrimSpace(string(u))
	return nil
}

func (u SetClientEmail) apply(e *Estimate) error {
	e.ClientEmail = strings.TrimSpace(string(u))
	return nil
}

func (u SetCurrency) apply(e *Estimate) error {
	c, err := ParseCurrency(string(u))
	if err != nil {
		return err
	}
	e.Currency = c
	return nil
}

// Apply performs the given updates in order. The estimate is left unchanged
// if any of them fails.
func (e *Estimate) Apply(updates ...Update) error {
	next := *e
	for _, u := range updates {
		if u == nil {
			return fmt.Errorf("apply estimate update: nil update")
		}
		if err := u.apply(&next); err != nil {
			return err
		}
	}
	*e = next
	return nil
}

// RequireItems rejects exporting an estimate without materials.
func RequireItems(e *Estimate) error {
	if e.Empty() {
		return newValidationError("items", "Add at least one material to generate PDF")
	}
	return nil
}

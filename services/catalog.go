package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog is the ordered list of materials of one estimate. Insertion order
// is display order. Add and Remove return a new Catalog and never touch the
// items of the receiver.
type Catalog []MaterialItem

// Add appends item to the end of the catalog. Identifiers are generated
// collision-free, so a duplicate id is a programming error and panics.
func (c Catalog) Add(item MaterialItem) Catalog {
	if c.Has(item.ID) {
		panic(fmt.Errorf("%w: %s", ErrDuplicateItemID, item.ID))
	}
	out := make(Catalog, len(c), len(c)+1)
	copy(out, c)
	return append(out, item)
}

// Remove drops the item with the given id. Unknown ids are a no-op.
func (c Catalog) Remove(id string) Catalog {
	out := make(Catalog, 0, len(c))
	for _, item := range c {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// Has reports whether an item with id is present.
func (c Catalog) Has(id string) bool {
	for _, item := range c {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Total delegates to GrandTotal.
func (c Catalog) Total() decimal.Decimal {
	return GrandTotal(c)
}

package services

import (
	"errors"
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Unit is the unit of measure a material quantity is expressed in.
type Unit string

const (
	UnitPieces Unit = "pcs"
	UnitFeet   Unit = "ft"
	UnitMeters Unit = "m"
	UnitBox    Unit = "box"
	UnitRoll   Unit = "roll"
)

// MaterialItem is one priced line of an estimate.
type MaterialItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
	Price    float64 `json:"price"`
	IsCable  bool    `json:"is_cable"`
	Brand    string  `json:"brand,omitempty"`
}

// MaterialInput is the raw material as entered in the form or read from an
// import file, before validation.
type MaterialInput struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	Price         float64 `json:"price"`
	IsCable       bool    `json:"is_cable"`
	CableStandard string  `json:"cable_standard"`
	OtherStandard string  `json:"other_standard"`
	Brand         string  `json:"brand"`
}

// ResolvedBrand returns the brand that ends up on the item. For cables this
// is the selected standard (or the free text typed for "Other").
func (in MaterialInput) ResolvedBrand() string {
	if !in.IsCable {
		return strings.TrimSpace(in.Brand)
	}
	standard := strings.TrimSpace(in.CableStandard)
	if standard == CableStandardOther {
		return strings.TrimSpace(in.OtherStandard)
	}
	if standard == "" {
		// Imports carry the standard in the brand column.
		return strings.TrimSpace(in.Brand)
	}
	return standard
}

// finite rejects NaN and infinite values, which no money arithmetic can
// represent.
func finite(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, _ := value.(float64)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(message)
		}
		return nil
	})
}

// Validate checks the material invariants: non-blank name, finite quantity
// > 0, finite price >= 0 and, for cables, a non-blank standard.
func (in MaterialInput) Validate() error {
	trimmed := in
	trimmed.Name = strings.TrimSpace(in.Name)
	trimmed.Brand = in.ResolvedBrand()

	err := validation.ValidateStruct(&trimmed,
		validation.Field(&trimmed.Name,
			validation.Required.Error("Material name is required"),
		),
		validation.Field(&trimmed.Quantity,
			finite("Quantity must be a number"),
			validation.Required.Error("Quantity must be greater than 0"),
			validation.Min(0.0).Exclusive().Error("Quantity must be greater than 0"),
		),
		validation.Field(&trimmed.Price,
			finite("Price must be a number"),
			validation.Min(0.0).Error("Price cannot be negative"),
		),
		validation.Field(&trimmed.Brand,
			validation.When(trimmed.IsCable,
				validation.Required.Error("Please select a cable standard"),
			),
		),
	)
	return fromOzzo(err)
}

// NewMaterialItem validates the input and turns it into a MaterialItem with
// a fresh identifier. An empty unit defaults to pcs.
func NewMaterialItem(in MaterialInput) (MaterialItem, error) {
	if err := in.Validate(); err != nil {
		return MaterialItem{}, err
	}

	unit := Unit(strings.TrimSpace(in.Unit))
	if unit == "" {
		unit = UnitPieces
	}

	return MaterialItem{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Quantity: in.Quantity,
		Unit:     unit,
		Price:    in.Price,
		IsCable:  in.IsCable,
		Brand:    in.ResolvedBrand(),
	}, nil
}

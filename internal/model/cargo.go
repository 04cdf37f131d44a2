package model

import (
	"fmt"

	"github.com/google/uuid"
)

// CargoItem is one line of the cargo manifest.
type CargoItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Length    float64 `json:"length"` // cm
	Width     float64 `json:"width"`  // cm
	Height    float64 `json:"height"` // cm
	Weight    float64 `json:"weight"` // kg per unit
	Quantity  int     `json:"quantity"`
	Stackable bool    `json:"stackable"` // informational, not enforced by the placement engine
}

// NewCargoItem creates a CargoItem with a generated short id. New items are
// not stackable.
func NewCargoItem(name string, length, width, height, weight float64, qty int) CargoItem {
	return CargoItem{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Width:    width,
		Height:   height,
		Weight:   weight,
		Quantity: qty,
	}
}

// Dimensions returns the item's extent in its unrotated orientation.
func (c CargoItem) Dimensions() Dimensions {
	return Dimensions{Length: c.Length, Width: c.Width, Height: c.Height}
}

// Volume returns the volume of a single unit in cm³.
func (c CargoItem) Volume() float64 {
	return c.Dimensions().Volume()
}

// TotalWeight returns Weight x Quantity.
func (c CargoItem) TotalWeight() float64 {
	return c.Weight * float64(c.Quantity)
}

// Validate checks that dimensions, weight and quantity are positive.
// The placement engine never calls it; input layers do.
func (c CargoItem) Validate() error {
	if c.Length <= 0 || c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("item %q: length, width and height must be positive", c.Name)
	}
	if c.Weight <= 0 {
		return fmt.Errorf("item %q: weight must be positive", c.Name)
	}
	if c.Quantity <= 0 {
		return fmt.Errorf("item %q: quantity must be positive", c.Name)
	}
	return nil
}

// UnitItem is a single physical unit of a CargoItem. The embedded item has
// Quantity 1 and a derived ID of the form "<CargoID>-<Index>".
type UnitItem struct {
	CargoItem
	CargoID string `json:"cargo_id"` // ID of the manifest line this unit came from
	Index   int    `json:"index"`    // 0-based unit number within that line
}

// NewUnitItem derives the index-th unit of item.
func NewUnitItem(item CargoItem, index int) UnitItem {
	u := UnitItem{CargoItem: item, CargoID: item.ID, Index: index}
	u.ID = fmt.Sprintf("%s-%d", item.ID, index)
	u.Quantity = 1
	return u
}

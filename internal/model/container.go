package model

import (
	"fmt"
	"strings"
)

// ContainerType tags one of the standard ISO container sizes.
type ContainerType string

const (
	ContainerGP20 ContainerType = "20GP" // 20ft general purpose
	ContainerHQ20 ContainerType = "20HQ" // 20ft high cube
	ContainerGP40 ContainerType = "40GP" // 40ft general purpose
	ContainerHQ40 ContainerType = "40HQ" // 40ft high cube
)

func (t ContainerType) String() string {
	return string(t)
}

// ContainerSpec describes the usable envelope and payload limit of a
// container type.
type ContainerSpec struct {
	ID        string        `json:"id"`
	Type      ContainerType `json:"type"`
	Length    float64       `json:"length"`     // cm
	Width     float64       `json:"width"`      // cm
	Height    float64       `json:"height"`     // cm
	MaxWeight float64       `json:"max_weight"` // kg
}

// Dimensions returns the container envelope.
func (c ContainerSpec) Dimensions() Dimensions {
	return Dimensions{Length: c.Length, Width: c.Width, Height: c.Height}
}

// Volume returns the envelope volume in cm³.
func (c ContainerSpec) Volume() float64 {
	return c.Dimensions().Volume()
}

// Built-in container catalog. Dimensions in cm, weights in kg.
var containerSpecs = []ContainerSpec{
	{ID: "20gp", Type: ContainerGP20, Length: 590, Width: 235, Height: 239, MaxWeight: 28000},
	{ID: "20hq", Type: ContainerHQ20, Length: 590, Width: 235, Height: 269, MaxWeight: 28000},
	{ID: "40gp", Type: ContainerGP40, Length: 1203, Width: 235, Height: 239, MaxWeight: 26000},
	{ID: "40hq", Type: ContainerHQ40, Length: 1203, Width: 235, Height: 269, MaxWeight: 26000},
}

// ContainerSpecs returns a copy of the catalog in catalog order.
func ContainerSpecs() []ContainerSpec {
	specs := make([]ContainerSpec, len(containerSpecs))
	copy(specs, containerSpecs)
	return specs
}

// GetContainer looks up a catalog entry by id (case-insensitive).
func GetContainer(id string) (ContainerSpec, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range containerSpecs {
		if c.ID == id {
			return c, true
		}
	}
	return ContainerSpec{}, false
}

// GetContainerByType looks up a catalog entry by type tag.
func GetContainerByType(t ContainerType) (ContainerSpec, bool) {
	for _, c := range containerSpecs {
		if c.Type == t {
			return c, true
		}
	}
	return ContainerSpec{}, false
}

// ContainerIDs returns the catalog ids in catalog order.
func ContainerIDs() []string {
	ids := make([]string, len(containerSpecs))
	for i, c := range containerSpecs {
		ids[i] = c.ID
	}
	return ids
}

// LookupContainers resolves catalog ids (or type tags such as "40HQ") in the
// given order. Duplicates are kept; the caller's order matters for tie-breaks.
func LookupContainers(ids []string) ([]ContainerSpec, error) {
	specs := make([]ContainerSpec, 0, len(ids))
	for _, id := range ids {
		spec, ok := GetContainer(id)
		if !ok {
			spec, ok = GetContainerByType(ContainerType(strings.ToUpper(strings.TrimSpace(id))))
		}
		if !ok {
			return nil, fmt.Errorf("unknown container %q (known: %s)", id, strings.Join(ContainerIDs(), ", "))
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseContainerSelection parses a comma separated list such as "20gp,40hq".
func ParseContainerSelection(s string) ([]ContainerSpec, error) {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return LookupContainers(ids)
}

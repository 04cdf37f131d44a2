package model

import (
	"fmt"

	"github.com/google/uuid"
)

// PlacedItem is one unit bound to a position and orientation inside a
// container instance.
type PlacedItem struct {
	ID          string      `json:"id"`       // unit id, e.g. "a1b2c3d4-0"
	CargoID     string      `json:"cargo_id"` // originating manifest item
	Name        string      `json:"name"`
	Length      float64     `json:"length"` // extent along x in the chosen orientation
	Width       float64     `json:"width"`  // extent along y in the chosen orientation
	Height      float64     `json:"height"`
	Weight      float64     `json:"weight"`
	Position    Position    `json:"position"`
	Orientation Orientation `json:"rotation"`
}

// Dimensions returns the placed (oriented) extent.
func (p PlacedItem) Dimensions() Dimensions {
	return Dimensions{Length: p.Length, Width: p.Width, Height: p.Height}
}

// Volume returns the placed volume in cm³.
func (p PlacedItem) Volume() float64 {
	return p.Dimensions().Volume()
}

// End returns the corner opposite Position.
func (p PlacedItem) End() Position {
	return p.Position.Offset(p.Length, p.Width, p.Height)
}

// LoadingPlan is the content of one container instance.
type LoadingPlan struct {
	Container       ContainerSpec `json:"container"`
	Index           int           `json:"index"`    // 1-based position in the result
	Instance        int           `json:"instance"` // 1-based count among plans of the same container id
	Items           []PlacedItem  `json:"items"`
	UsedVolume      float64       `json:"used_volume"`      // cm³
	RemainingVolume float64       `json:"remaining_volume"` // cm³
	UsedWeight      float64       `json:"used_weight"`      // kg
	RemainingWeight float64       `json:"remaining_weight"` // kg
	// Utilization percentages, derived once when the plan is built.
	VolumeUtilization float64 `json:"utilization_volume"`
	WeightUtilization float64 `json:"utilization_weight"`
}

// ContainerID returns the catalog id of the plan's container.
func (lp LoadingPlan) ContainerID() string {
	return lp.Container.ID
}

// ContainerType returns the type tag of the plan's container.
func (lp LoadingPlan) ContainerType() ContainerType {
	return lp.Container.Type
}

// Title returns a display name such as "20GP #2".
func (lp LoadingPlan) Title() string {
	return fmt.Sprintf("%s #%d", lp.Container.Type, lp.Instance)
}

// OptimizationResult holds the full loading solution.
type OptimizationResult struct {
	Plans          []LoadingPlan `json:"plans"`
	UnplacedItems  []CargoItem   `json:"unplaced_items"` // residual quantities at manifest granularity
	ContainerCount int           `json:"total_containers"`
	Utilization    float64       `json:"total_utilization"` // used volume / container volume over all plans, %
}

// UnplacedUnits returns the number of physical units that were not placed.
func (r OptimizationResult) UnplacedUnits() int {
	n := 0
	for _, item := range r.UnplacedItems {
		n += item.Quantity
	}
	return n
}

// PlacedUnits returns the number of physical units placed across all plans.
func (r OptimizationResult) PlacedUnits() int {
	n := 0
	for _, p := range r.Plans {
		n += len(p.Items)
	}
	return n
}

// TotalWeight returns the placed weight over all plans in kg.
func (r OptimizationResult) TotalWeight() float64 {
	var w float64
	for _, p := range r.Plans {
		w += p.UsedWeight
	}
	return w
}

// Project ties a manifest, a container selection and an optional result
// together for save/load.
type Project struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Items      []CargoItem         `json:"items"`
	Containers []string            `json:"containers"` // catalog ids in selection order
	Result     *OptimizationResult `json:"result,omitempty"`
}

// NewProject creates an empty project with a generated id and the default
// container selection.
func NewProject(name string) Project {
	return Project{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Items:      []CargoItem{},
		Containers: DefaultAppConfig().DefaultContainers,
	}
}

// SelectedContainers resolves the project's container ids against the catalog.
func (p Project) SelectedContainers() ([]ContainerSpec, error) {
	return LookupContainers(p.Containers)
}

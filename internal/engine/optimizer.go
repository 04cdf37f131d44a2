package engine

import (
	"io"
	"log/slog"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// Optimizer runs the greedy 3D container loading heuristic.
// It holds no state between calls; every Optimize call owns its own
// container ordering, unit pool and free-space partitions.
type Optimizer struct {
	logger *slog.Logger
}

// New returns an Optimizer. A nil logger discards all output.
func New(logger *slog.Logger) *Optimizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Optimizer{logger: logger}
}

// Optimize assigns the manifest to instances of the selected containers.
//
// Containers are tried smallest first. A container type is instantiated
// again as long as the previous instance received at least one unit; the
// first instance that receives nothing exhausts the type and the next
// larger one is tried. Units left when all types are exhausted are reported
// in UnplacedItems at manifest granularity.
func (o *Optimizer) Optimize(items []model.CargoItem, containers []model.ContainerSpec) model.OptimizationResult {
	ordered := OrderContainers(containers)
	pool := ExpandItems(items)

	result := model.OptimizationResult{Plans: []model.LoadingPlan{}}
	instances := make(map[string]int)
	idx := 0

	for len(pool) > 0 && idx < len(ordered) {
		container := ordered[idx]
		plan, unplaced := PackContainer(container, pool)

		if len(plan.Items) == 0 {
			o.logger.Debug("container type exhausted",
				"container", container.ID, "remaining_units", len(pool))
			idx++
			continue
		}

		instances[container.ID]++
		plan.Instance = instances[container.ID]
		plan.Index = len(result.Plans) + 1
		result.Plans = append(result.Plans, plan)

		o.logger.Debug("container loaded",
			"container", container.ID,
			"instance", plan.Instance,
			"placed", len(plan.Items),
			"volume_pct", plan.VolumeUtilization,
			"weight_pct", plan.WeightUtilization,
			"remaining_units", len(unplaced))
		pool = unplaced
	}

	result.UnplacedItems = aggregateUnplaced(items, pool)
	result.ContainerCount = len(result.Plans)
	result.Utilization = totalUtilization(result.Plans)

	o.logger.Info("optimization complete",
		"containers", result.ContainerCount,
		"placed_units", result.PlacedUnits(),
		"unplaced_units", len(pool),
		"utilization_pct", result.Utilization)
	return result
}

// PackContainer fills one fresh instance of container from pool, visiting
// units in pool order, each at most once. It returns the plan and the units
// that were not placed, in their original order.
//
// A unit heavier than the remaining payload is skipped before any geometric
// check. Otherwise the first free region that fits it in either orientation
// is used.
func PackContainer(container model.ContainerSpec, pool []model.UnitItem) (model.LoadingPlan, []model.UnitItem) {
	containerVolume := container.Volume()
	remainingVolume := containerVolume
	remainingWeight := container.MaxWeight

	space := NewPartition(container.Dimensions())
	plan := model.LoadingPlan{
		Container: container,
		Items:     []model.PlacedItem{},
	}
	var unplaced []model.UnitItem

	for _, unit := range pool {
		if unit.Weight > remainingWeight {
			unplaced = append(unplaced, unit)
			continue
		}

		dims := unit.Dimensions()
		regionIdx, orientation, ok := space.FindFit(dims)
		if !ok {
			unplaced = append(unplaced, unit)
			continue
		}

		pos := space.Place(regionIdx, dims, orientation)
		placed := dims.Oriented(orientation)
		plan.Items = append(plan.Items, model.PlacedItem{
			ID:          unit.ID,
			CargoID:     unit.CargoID,
			Name:        unit.Name,
			Length:      placed.Length,
			Width:       placed.Width,
			Height:      placed.Height,
			Weight:      unit.Weight,
			Position:    pos,
			Orientation: orientation,
		})

		remainingVolume -= placed.Volume()
		remainingWeight -= unit.Weight
	}

	plan.RemainingVolume = remainingVolume
	plan.RemainingWeight = remainingWeight
	plan.UsedVolume = containerVolume - remainingVolume
	plan.UsedWeight = container.MaxWeight - remainingWeight
	plan.VolumeUtilization = model.Percent(plan.UsedVolume, containerVolume)
	plan.WeightUtilization = model.Percent(plan.UsedWeight, container.MaxWeight)

	return plan, unplaced
}

// totalUtilization returns used volume over container volume across all
// plans as a percentage, or 0 without plans.
func totalUtilization(plans []model.LoadingPlan) float64 {
	var used, total float64
	for _, p := range plans {
		used += p.UsedVolume
		total += p.Container.Volume()
	}
	return model.Percent(used, total)
}

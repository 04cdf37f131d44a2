package engine

import (
	"sort"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// ExpandItems turns a manifest into one UnitItem per physical unit, sorted
// by unit volume descending. Ties keep manifest order, then unit order.
// Items are not validated: a non-positive quantity simply yields no units.
func ExpandItems(items []model.CargoItem) []model.UnitItem {
	var expanded []model.UnitItem
	for _, item := range items {
		for i := 0; i < item.Quantity; i++ {
			expanded = append(expanded, model.NewUnitItem(item, i))
		}
	}

	// Largest first
	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Volume() > expanded[j].Volume()
	})
	return expanded
}

// OrderContainers returns the selection sorted by volume ascending so that
// smaller containers are filled before larger ones are opened. Ties keep
// selection order. The input slice is not modified.
func OrderContainers(containers []model.ContainerSpec) []model.ContainerSpec {
	ordered := make([]model.ContainerSpec, len(containers))
	copy(ordered, containers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Volume() < ordered[j].Volume()
	})
	return ordered
}

// aggregateUnplaced folds leftover units back into manifest lines. Each
// manifest item with at least one unplaced unit is reported once, in
// manifest order, with Quantity reduced to the number of unplaced units.
func aggregateUnplaced(items []model.CargoItem, pool []model.UnitItem) []model.CargoItem {
	if len(pool) == 0 {
		return []model.CargoItem{}
	}

	counts := make(map[string]int, len(pool))
	for _, u := range pool {
		counts[u.CargoID]++
	}

	unplaced := make([]model.CargoItem, 0, len(counts))
	for _, item := range items {
		n, ok := counts[item.ID]
		if !ok {
			continue
		}
		// Duplicate manifest ids share one count; report it on the first line only.
		delete(counts, item.ID)
		residual := item
		residual.Quantity = n
		unplaced = append(unplaced, residual)
	}
	return unplaced
}

package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// ComparisonScenario is a named container selection to evaluate.
type ComparisonScenario struct {
	Name       string
	Containers []model.ContainerSpec
}

// ComparisonResult holds the optimization result and headline numbers for
// a single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Result         model.OptimizationResult
	ContainersUsed int
	PlacedUnits    int
	UnplacedUnits  int
	Utilization    float64
	WastedVolume   float64 // cm³ left empty across all used containers
}

// CompareScenarios runs the optimizer once per scenario against the same
// manifest and returns the results in scenario order.
func (o *Optimizer) CompareScenarios(scenarios []ComparisonScenario, items []model.CargoItem) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := o.Optimize(items, scenario.Containers)

		var wasted float64
		for _, p := range result.Plans {
			wasted += p.RemainingVolume
		}

		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Result:         result,
			ContainersUsed: result.ContainerCount,
			PlacedUnits:    result.PlacedUnits(),
			UnplacedUnits:  result.UnplacedUnits(),
			Utilization:    result.Utilization,
			WastedVolume:   wasted,
		})
	}

	return results
}

// BuildDefaultScenarios returns what-if alternatives to the current
// selection: the selection itself, each catalog type on its own, and the
// whole catalog.
func BuildDefaultScenarios(selection []model.ContainerSpec) []ComparisonScenario {
	ids := make([]string, len(selection))
	for i, c := range selection {
		ids[i] = c.ID
	}

	scenarios := []ComparisonScenario{
		{
			Name:       fmt.Sprintf("Current selection (%s)", strings.Join(ids, ", ")),
			Containers: selection,
		},
	}

	for _, c := range model.ContainerSpecs() {
		scenarios = append(scenarios, ComparisonScenario{
			Name:       fmt.Sprintf("%s only", c.Type),
			Containers: []model.ContainerSpec{c},
		})
	}

	scenarios = append(scenarios, ComparisonScenario{
		Name:       "All container types",
		Containers: model.ContainerSpecs(),
	})

	return scenarios
}

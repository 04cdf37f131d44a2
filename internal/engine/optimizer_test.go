package engine

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-6

func container(t *testing.T, id string) model.ContainerSpec {
	t.Helper()
	c, ok := model.GetContainer(id)
	require.True(t, ok, "catalog entry %s", id)
	return c
}

// overlaps reports whether two placed boxes share interior volume.
// Touching faces do not count.
func overlaps(a, b model.PlacedItem) bool {
	ae, be := a.End(), b.End()
	return a.Position.X < be.X-epsilon && b.Position.X < ae.X-epsilon &&
		a.Position.Y < be.Y-epsilon && b.Position.Y < ae.Y-epsilon &&
		a.Position.Z < be.Z-epsilon && b.Position.Z < ae.Z-epsilon
}

// assertPlanInvariants checks the accounting and geometry guarantees every
// plan must satisfy.
func assertPlanInvariants(t *testing.T, plan model.LoadingPlan) {
	t.Helper()
	c := plan.Container

	var vol, kg float64
	for _, it := range plan.Items {
		vol += it.Volume()
		kg += it.Weight

		end := it.End()
		assert.GreaterOrEqual(t, it.Position.X, 0.0, "item %s x", it.ID)
		assert.GreaterOrEqual(t, it.Position.Y, 0.0, "item %s y", it.ID)
		assert.GreaterOrEqual(t, it.Position.Z, 0.0, "item %s z", it.ID)
		assert.LessOrEqual(t, end.X, c.Length+epsilon, "item %s exceeds length", it.ID)
		assert.LessOrEqual(t, end.Y, c.Width+epsilon, "item %s exceeds width", it.ID)
		assert.LessOrEqual(t, end.Z, c.Height+epsilon, "item %s exceeds height", it.ID)
	}

	for i := range plan.Items {
		for j := i + 1; j < len(plan.Items); j++ {
			a, b := plan.Items[i], plan.Items[j]
			assert.False(t, overlaps(a, b), "items %s and %s overlap", a.ID, b.ID)
		}
	}

	assert.InDelta(t, c.Volume(), vol+plan.RemainingVolume, epsilon)
	assert.InDelta(t, c.MaxWeight, kg+plan.RemainingWeight, epsilon)
	assert.InDelta(t, vol, plan.UsedVolume, epsilon)
	assert.InDelta(t, kg, plan.UsedWeight, epsilon)
	assert.LessOrEqual(t, kg, c.MaxWeight+epsilon, "plan overweight")
}

func TestOverlaps(t *testing.T) {
	box := func(x, y, z float64) model.PlacedItem {
		return model.PlacedItem{Length: 100, Width: 80, Height: 60, Position: model.Position{X: x, Y: y, Z: z}}
	}

	assert.True(t, overlaps(box(0, 0, 0), box(50, 40, 30)))
	assert.True(t, overlaps(box(0, 0, 0), box(0, 0, 0)))
	assert.False(t, overlaps(box(0, 0, 0), box(100, 0, 0)), "shared x face")
	assert.False(t, overlaps(box(0, 0, 0), box(0, 80, 0)), "shared y face")
	assert.False(t, overlaps(box(0, 0, 0), box(0, 0, 60)), "shared z face")
	assert.False(t, overlaps(box(0, 0, 0), box(300, 300, 300)))
}

func TestOptimize_SingleItemTypeFitsOneContainer(t *testing.T) {
	opt := New(nil)
	items := []model.CargoItem{item("box", 100, 80, 60, 50, 10)}

	result := opt.Optimize(items, []model.ContainerSpec{container(t, "20gp")})

	require.Len(t, result.Plans, 1)
	assert.Empty(t, result.UnplacedItems)
	assert.Equal(t, 1, result.ContainerCount)

	plan := result.Plans[0]
	assert.Len(t, plan.Items, 10)
	assert.Equal(t, "20gp", plan.ContainerID())
	assert.Equal(t, 1, plan.Instance)
	assert.Equal(t, 1, plan.Index)
	assert.InDelta(t, 500.0, plan.UsedWeight, epsilon)
	assert.InDelta(t, 500.0/28000.0*100, plan.WeightUtilization, epsilon)
	assert.InDelta(t, 1.79, plan.WeightUtilization, 0.01)
	assertPlanInvariants(t, plan)
}

func TestOptimize_FirstPlacementsFollowSplitOrder(t *testing.T) {
	opt := New(nil)
	items := []model.CargoItem{item("box", 100, 80, 60, 50, 3)}

	result := opt.Optimize(items, []model.ContainerSpec{container(t, "20gp")})

	require.Len(t, result.Plans, 1)
	placed := result.Plans[0].Items
	require.Len(t, placed, 3)

	// First at the origin, second in the length-wise slab, third in the
	// width-wise slab left by the first.
	assert.Equal(t, model.Position{X: 0, Y: 0, Z: 0}, placed[0].Position)
	assert.Equal(t, model.Position{X: 100, Y: 0, Z: 0}, placed[1].Position)
	assert.Equal(t, model.Position{X: 0, Y: 80, Z: 0}, placed[2].Position)
	for _, p := range placed {
		assert.Equal(t, model.OrientationLengthWidth, p.Orientation)
		assert.Equal(t, "box", p.CargoID)
	}
	assert.Equal(t, "box-0", placed[0].ID)
}

func TestOptimize_ItemTooLargeEverywhere(t *testing.T) {
	opt := New(nil)
	items := []model.CargoItem{item("pipe", 700, 50, 50, 10, 1)}

	result := opt.Optimize(items, []model.ContainerSpec{container(t, "20gp")})

	assert.Empty(t, result.Plans)
	assert.Equal(t, 0, result.ContainerCount)
	assert.Equal(t, 0.0, result.Utilization)
	require.Len(t, result.UnplacedItems, 1)
	assert.Equal(t, "pipe", result.UnplacedItems[0].ID)
	assert.Equal(t, 1, result.UnplacedItems[0].Quantity)
}

func TestOptimize_TooHeavyForEveryContainer(t *testing.T) {
	opt := New(nil)
	items := []model.CargoItem{item("ingot", 50, 50, 50, 30000, 2)}

	result := opt.Optimize(items, []model.ContainerSpec{container(t, "20gp"), container(t, "40hq")})

	assert.Empty(t, result.Plans)
	require.Len(t, result.UnplacedItems, 1)
	assert.Equal(t, 2, result.UnplacedItems[0].Quantity)
}

func TestOptimize_SmallerContainerFirstThenAdvance(t *testing.T) {
	opt := New(nil)
	items := []model.CargoItem{
		item("short", 500, 200, 200, 100, 1),
		item("long", 1000, 200, 200, 100, 1),
	}
	// Larger type selected first; ordering must still try 20GP first.
	selection := []model.ContainerSpec{container(t, "40hq"), container(t, "20gp")}

	result := opt.Optimize(items, selection)

	require.Len(t, result.Plans, 2)
	assert.Empty(t, result.UnplacedItems)

	assert.Equal(t, "20gp", result.Plans[0].ContainerID())
	require.Len(t, result.Plans[0].Items, 1)
	assert.Equal(t, "short", result.Plans[0].Items[0].CargoID)

	assert.Equal(t, "40hq", result.Plans[1].ContainerID())
	require.Len(t, result.Plans[1].Items, 1)
	assert.Equal(t, "long", result.Plans[1].Items[0].CargoID)
	assert.Equal(t, 2, result.Plans[1].Index)
	assert.Equal(t, 1, result.Plans[1].Instance)
}

func TestOptimize_ReopensSameTypeWhileProgressing(t *testing.T) {
	opt := New(nil)
	// Each unit fills a 20GP completely.
	items := []model.CargoItem{item("block", 590, 235, 239, 100, 3)}

	result := opt.Optimize(items, []model.ContainerSpec{container(t, "20gp"), container(t, "40hq")})

	require.Len(t, result.Plans, 3)
	for i, plan := range result.Plans {
		assert.Equal(t, "20gp", plan.ContainerID())
		assert.Equal(t, i+1, plan.Instance)
		assert.Len(t, plan.Items, 1)
		assert.InDelta(t, 100.0, plan.VolumeUtilization, epsilon)
		assert.InDelta(t, 0.0, plan.RemainingVolume, epsilon)
		assertPlanInvariants(t, plan)
	}
	assert.InDelta(t, 100.0, result.Utilization, epsilon)
}

func TestOptimize_RotatesToFit(t *testing.T) {
	opt := New(nil)
	items := []model.CargoItem{item("beam", 235, 590, 100, 100, 1)}

	result := opt.Optimize(items, []model.ContainerSpec{container(t, "20gp")})

	require.Len(t, result.Plans, 1)
	p := result.Plans[0].Items[0]
	assert.Equal(t, model.OrientationWidthLength, p.Orientation)
	assert.Equal(t, 590.0, p.Length)
	assert.Equal(t, 235.0, p.Width)
	assert.Equal(t, 100.0, p.Height)
}

func TestOptimize_WeightCheckedBeforeGeometry(t *testing.T) {
	opt := New(nil)
	items := []model.CargoItem{
		item("heavy1", 100, 100, 100, 20000, 1),
		item("heavy2", 100, 100, 100, 20000, 1),
		item("light", 100, 100, 100, 5000, 1),
	}

	result := opt.Optimize(items, []model.ContainerSpec{container(t, "20gp")})

	require.Len(t, result.Plans, 2)
	first := result.Plans[0]
	require.Len(t, first.Items, 2)
	assert.Equal(t, "heavy1", first.Items[0].CargoID)
	assert.Equal(t, "light", first.Items[1].CargoID, "skipped heavy unit must not block lighter ones")
	assert.InDelta(t, 3000.0, first.RemainingWeight, epsilon)

	second := result.Plans[1]
	require.Len(t, second.Items, 1)
	assert.Equal(t, "heavy2", second.Items[0].CargoID)
	assert.Empty(t, result.UnplacedItems)
}

func TestOptimize_EmptyInputs(t *testing.T) {
	opt := New(nil)

	// No cargo
	result := opt.Optimize(nil, []model.ContainerSpec{container(t, "20gp")})
	assert.Empty(t, result.Plans)
	assert.Empty(t, result.UnplacedItems)
	assert.Equal(t, 0, result.ContainerCount)
	assert.Equal(t, 0.0, result.Utilization)

	// No containers
	items := []model.CargoItem{item("a", 10, 10, 10, 1, 4)}
	result = opt.Optimize(items, nil)
	assert.Empty(t, result.Plans)
	require.Len(t, result.UnplacedItems, 1)
	assert.Equal(t, 4, result.UnplacedItems[0].Quantity)
}

func mixedManifest() []model.CargoItem {
	return []model.CargoItem{
		item("boxA", 100, 80, 60, 50, 40),
		item("palletB", 120, 100, 140, 200, 25),
		item("crateC", 200, 150, 180, 300, 12),
		item("tube", 1100, 30, 30, 20, 3),
		item("oversize", 1300, 240, 100, 500, 2),
		item("anvil", 40, 40, 40, 29000, 1),
	}
}

func TestOptimize_EveryUnitAccountedForOnce(t *testing.T) {
	opt := New(nil)
	items := mixedManifest()
	selection := []model.ContainerSpec{container(t, "20gp"), container(t, "40hq")}

	result := opt.Optimize(items, selection)

	placed := map[string]int{}
	seen := map[string]bool{}
	for _, plan := range result.Plans {
		assertPlanInvariants(t, plan)
		for _, it := range plan.Items {
			assert.False(t, seen[it.ID], "unit %s placed twice", it.ID)
			seen[it.ID] = true
			placed[it.CargoID]++
		}
	}
	unplaced := map[string]int{}
	for _, u := range result.UnplacedItems {
		unplaced[u.ID] += u.Quantity
	}

	for _, it := range items {
		assert.Equal(t, it.Quantity, placed[it.ID]+unplaced[it.ID], "item %s", it.ID)
	}
	assert.Equal(t, 2, unplaced["oversize"], "oversize never fits")
	assert.Equal(t, 1, unplaced["anvil"], "anvil exceeds every payload")
	assert.Equal(t, 3, placed["tube"], "tubes only fit 40ft containers")
	assert.Equal(t, len(result.Plans), result.ContainerCount)
}

func TestOptimize_TotalUtilization(t *testing.T) {
	opt := New(nil)
	result := opt.Optimize(mixedManifest(), []model.ContainerSpec{container(t, "20gp"), container(t, "40hq")})
	require.NotEmpty(t, result.Plans)

	var used, total float64
	for _, p := range result.Plans {
		used += p.UsedVolume
		total += p.Container.Volume()
	}
	assert.InDelta(t, used/total*100, result.Utilization, epsilon)
	assert.Greater(t, result.Utilization, 0.0)
	assert.LessOrEqual(t, result.Utilization, 100.0)
}

func TestOptimize_Deterministic(t *testing.T) {
	opt := New(nil)
	selection := []model.ContainerSpec{container(t, "40gp"), container(t, "20hq")}

	first := opt.Optimize(mixedManifest(), selection)
	second := opt.Optimize(mixedManifest(), selection)

	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b), "results should serialize identically")
}

func TestOptimize_LogsSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opt := New(logger)

	opt.Optimize([]model.CargoItem{item("box", 100, 80, 60, 50, 2)}, []model.ContainerSpec{container(t, "20gp")})

	out := buf.String()
	assert.Contains(t, out, "container loaded")
	assert.Contains(t, out, "optimization complete")
	assert.Contains(t, out, "placed_units=2")
}

func TestPackContainer_EmptyPool(t *testing.T) {
	c := container(t, "20gp")
	plan, unplaced := PackContainer(c, nil)

	assert.Empty(t, plan.Items)
	assert.Empty(t, unplaced)
	assert.Equal(t, c.Volume(), plan.RemainingVolume)
	assert.Equal(t, c.MaxWeight, plan.RemainingWeight)
	assert.Equal(t, 0.0, plan.VolumeUtilization)
	assert.Equal(t, 0.0, plan.WeightUtilization)
}

func TestPackContainer_NothingFitsKeepsPoolOrder(t *testing.T) {
	c := container(t, "20gp")
	pool := ExpandItems([]model.CargoItem{
		item("long", 700, 50, 50, 1, 2),
		item("heavy", 10, 10, 10, 30000, 1),
	})

	plan, unplaced := PackContainer(c, pool)

	assert.Empty(t, plan.Items)
	assert.Equal(t, unitIDs(pool), unitIDs(unplaced))
	assert.Equal(t, c.Volume(), plan.RemainingVolume)
}

func TestPackContainer_MoreWeightNeverPlacesFewer(t *testing.T) {
	// Uniform unit weight: a lighter limit stops at a prefix of the
	// placements made under a heavier one.
	pool := ExpandItems([]model.CargoItem{
		item("a", 100, 80, 60, 250, 20),
		item("b", 120, 100, 140, 250, 10),
		item("c", 60, 40, 30, 250, 30),
	})

	base := container(t, "20gp")
	prev := -1
	for _, maxWeight := range []float64{0, 200, 500, 1000, 2500, 5000, 10000, 20000, 40000} {
		c := base
		c.MaxWeight = maxWeight
		plan, unplaced := PackContainer(c, pool)

		assert.GreaterOrEqual(t, len(plan.Items), prev, "max weight %.0f", maxWeight)
		assert.Equal(t, len(pool), len(plan.Items)+len(unplaced))
		assertPlanInvariants(t, plan)
		prev = len(plan.Items)
	}
	assert.Greater(t, prev, 0)
}

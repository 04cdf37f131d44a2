package export

import (
	"fmt"

	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// dxfPlanGap is the clearance in cm between consecutive containers when
// laid out side by side along y.
const dxfPlanGap = 100.0

// dxfLayerColors is cycled per plan layer.
var dxfLayerColors = []color.ColorNumber{
	color.Red,
	color.Yellow,
	color.Green,
	color.Cyan,
	color.Blue,
	color.Magenta,
}

// edge is a wireframe segment between two corners.
type edge struct {
	From, To model.Position
}

// boxEdges returns the 12 edges of the axis-aligned box with the given
// origin and extent.
func boxEdges(origin model.Position, size model.Dimensions) []edge {
	c := func(dx, dy, dz float64) model.Position {
		return origin.Offset(dx*size.Length, dy*size.Width, dz*size.Height)
	}
	return []edge{
		// bottom
		{c(0, 0, 0), c(1, 0, 0)},
		{c(1, 0, 0), c(1, 1, 0)},
		{c(1, 1, 0), c(0, 1, 0)},
		{c(0, 1, 0), c(0, 0, 0)},
		// top
		{c(0, 0, 1), c(1, 0, 1)},
		{c(1, 0, 1), c(1, 1, 1)},
		{c(1, 1, 1), c(0, 1, 1)},
		{c(0, 1, 1), c(0, 0, 1)},
		// verticals
		{c(0, 0, 0), c(0, 0, 1)},
		{c(1, 0, 0), c(1, 0, 1)},
		{c(1, 1, 0), c(1, 1, 1)},
		{c(0, 1, 0), c(0, 1, 1)},
	}
}

// DXFLayerName returns the layer a plan is drawn on, e.g. "PLAN_2_40HQ".
func DXFLayerName(plan model.LoadingPlan) string {
	return fmt.Sprintf("PLAN_%d_%s", plan.Index, plan.ContainerType())
}

// planOffsets returns the y offset of each plan when containers are laid
// out next to each other.
func planOffsets(plans []model.LoadingPlan) []float64 {
	offsets := make([]float64, len(plans))
	y := 0.0
	for i, p := range plans {
		offsets[i] = y
		y += p.Container.Width + dxfPlanGap
	}
	return offsets
}

// ExportDXF writes a 3D wireframe of the result: every plan on its own
// layer with the container envelope, one box per placed unit and a title.
// Coordinates are in cm with x along the container length and z up.
func ExportDXF(path string, result model.OptimizationResult) error {
	if len(result.Plans) == 0 {
		return fmt.Errorf("no plans to export")
	}

	d := dxf.NewDrawing()
	offsets := planOffsets(result.Plans)

	for i, plan := range result.Plans {
		layer := DXFLayerName(plan)
		col := dxfLayerColors[i%len(dxfLayerColors)]
		if _, err := d.AddLayer(layer, col, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("adding layer %s: %w", layer, err)
		}
		if err := d.ChangeLayer(layer); err != nil {
			return fmt.Errorf("selecting layer %s: %w", layer, err)
		}

		base := model.Position{Y: offsets[i]}
		if err := drawBox(d, base, plan.Container.Dimensions()); err != nil {
			return fmt.Errorf("drawing %s envelope: %w", plan.Title(), err)
		}
		for _, it := range plan.Items {
			origin := base.Offset(it.Position.X, it.Position.Y, it.Position.Z)
			if err := drawBox(d, origin, it.Dimensions()); err != nil {
				return fmt.Errorf("drawing unit %s: %w", it.ID, err)
			}
		}

		title := fmt.Sprintf("%s  %.1f%% vol  %.1f%% kg", plan.Title(), plan.VolumeUtilization, plan.WeightUtilization)
		if _, err := d.Text(title, 0, offsets[i]-30, plan.Container.Height, 20); err != nil {
			return fmt.Errorf("labelling %s: %w", plan.Title(), err)
		}
	}

	return d.SaveAs(path)
}

func drawBox(d *drawing.Drawing, origin model.Position, size model.Dimensions) error {
	for _, e := range boxEdges(origin, size) {
		if _, err := d.Line(e.From.X, e.From.Y, e.From.Z, e.To.X, e.To.Y, e.To.Z); err != nil {
			return err
		}
	}
	return nil
}

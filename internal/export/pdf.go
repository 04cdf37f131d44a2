// Package export provides functionality for exporting container loading
// results to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadPlanner/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors is cycled per cargo line within a plan.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	viewGap      = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// cargoLegend is one legend entry: a cargo line and how many of its units
// are in the plan.
type cargoLegend struct {
	CargoID string
	Name    string
	Dims    model.Dimensions
	Count   int
	Color   itemColor
}

// planLegend groups a plan's placements by cargo line in order of first
// appearance and assigns each line a palette color.
func planLegend(plan model.LoadingPlan) []cargoLegend {
	var legend []cargoLegend
	index := make(map[string]int)
	for _, it := range plan.Items {
		if i, ok := index[it.CargoID]; ok {
			legend[i].Count++
			continue
		}
		dims := it.Dimensions()
		if it.Orientation.Rotated() {
			dims = dims.Oriented(it.Orientation)
		}
		index[it.CargoID] = len(legend)
		legend = append(legend, cargoLegend{
			CargoID: it.CargoID,
			Name:    it.Name,
			Dims:    dims,
			Count:   1,
			Color:   itemColors[len(legend)%len(itemColors)],
		})
	}
	return legend
}

// ExportPDF generates a PDF report of the loading result.
// Each plan is rendered on its own page with side and top projections,
// followed by a summary page with overall statistics.
func ExportPDF(path string, result model.OptimizationResult) error {
	if len(result.Plans) == 0 {
		return fmt.Errorf("no plans to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, plan := range result.Plans {
		pdf.AddPage()
		renderPlanPage(pdf, plan)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws a single loading plan on the current PDF page.
func renderPlanPage(pdf *fpdf.Fpdf, plan model.LoadingPlan) {
	c := plan.Container

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %d: %s (%.0f x %.0f x %.0f cm, max %.0f kg)",
		plan.Index, plan.Title(), c.Length, c.Width, c.Height, c.MaxWeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Volume: %.1f%% | Weight: %.1f%% | Remaining: %.2f m\xb3, %.0f kg",
		len(plan.Items), plan.VolumeUtilization, plan.WeightUtilization,
		plan.RemainingVolume/1e6, plan.RemainingWeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight - viewGap

	// Both views share the length scale so items line up vertically.
	scale := math.Min(drawWidth/c.Length, drawHeight/(c.Height+c.Width))
	canvasW := c.Length * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2

	legend := planLegend(plan)
	colors := make(map[string]itemColor, len(legend))
	for _, l := range legend {
		colors[l.CargoID] = l.Color
	}

	sideTop := drawAreaTop
	sideH := c.Height * scale
	drawView(pdf, "Side view (length x height)", offsetX, sideTop, canvasW, sideH)
	for _, it := range plan.Items {
		// PDF y grows downward; container floor is at the bottom edge.
		px := offsetX + it.Position.X*scale
		py := sideTop + sideH - (it.Position.Z+it.Height)*scale
		drawItemRect(pdf, it, colors[it.CargoID], px, py, it.Length*scale, it.Height*scale)
	}
	drawDimensionAnnotations(pdf, c.Length, c.Height, offsetX, sideTop, canvasW, sideH)

	topTop := sideTop + sideH + viewGap
	topH := c.Width * scale
	drawView(pdf, "Top view (length x width)", offsetX, topTop, canvasW, topH)
	for _, it := range plan.Items {
		px := offsetX + it.Position.X*scale
		py := topTop + it.Position.Y*scale
		drawItemRect(pdf, it, colors[it.CargoID], px, py, it.Length*scale, it.Width*scale)
	}
	drawDimensionAnnotations(pdf, c.Length, c.Width, offsetX, topTop, canvasW, topH)

	drawItemsLegend(pdf, legend, topTop+topH+6)
}

// drawView draws an empty container outline with a caption above it.
func drawView(pdf *fpdf.Fpdf, caption string, x, y, w, h float64) {
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(x, y-4)
	pdf.CellFormat(w, 4, caption, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, y, w, h, "FD")
}

// drawItemRect draws one placed item projected onto the current view.
func drawItemRect(pdf *fpdf.Fpdf, it model.PlacedItem, col itemColor, x, y, w, h float64) {
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "FD")

	if w > 15 && h > 6 {
		pdf.SetFont("Helvetica", "", labelFontSize(w, h))
		pdf.SetTextColor(0, 0, 0)
		label := it.Name
		labelW := pdf.GetStringWidth(label)
		if labelW < w-2 {
			pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

// drawDimensionAnnotations adds horizontal and vertical extent labels
// outside a view rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, horizontal, vertical, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)

	hLabel := fmt.Sprintf("%.0f cm", horizontal)
	hLabelW := pdf.GetStringWidth(hLabel)
	pdf.SetXY(offsetX+(canvasW-hLabelW)/2, offsetY+canvasH+0.5)
	pdf.CellFormat(hLabelW, 3.5, hLabel, "", 0, "C", false, 0, "")

	vLabel := fmt.Sprintf("%.0f cm", vertical)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	vLabelW := pdf.GetStringWidth(vLabel)
	pdf.SetXY(offsetX-3-vLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(vLabelW, 4, vLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemsLegend renders one swatch per cargo line below the views.
func drawItemsLegend(pdf *fpdf.Fpdf, legend []cargoLegend, startY float64) {
	if len(legend) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items loaded:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, l := range legend {
		label := fmt.Sprintf("%s (%.0fx%.0fx%.0f) x%d", l.Name, l.Dims.Length, l.Dims.Width, l.Dims.Height, l.Count)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(l.Color.R, l.Color.G, l.Color.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.OptimizationResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Container Loading Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Containers Used", fmt.Sprintf("%d", result.ContainerCount)},
		{"Overall Volume Utilization", fmt.Sprintf("%.1f%%", result.Utilization)},
		{"Units Loaded", fmt.Sprintf("%d", result.PlacedUnits())},
		{"Total Weight Loaded", fmt.Sprintf("%.0f kg", result.TotalWeight())},
		{"Units Not Loaded", fmt.Sprintf("%d", result.UnplacedUnits())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Container Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 35, 55, 25, 30, 30, 45, 32}
	headers := []string{"#", "Container", "Dimensions", "Items", "Volume", "Weight", "Remaining Volume", "Remaining kg"}
	y = drawTableHeader(pdf, colWidths, headers, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, plan := range result.Plans {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = drawTableHeader(pdf, colWidths, headers, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		c := plan.Container
		rowData := []string{
			fmt.Sprintf("%d", plan.Index),
			plan.Title(),
			fmt.Sprintf("%.0f x %.0f x %.0f cm", c.Length, c.Width, c.Height),
			fmt.Sprintf("%d", len(plan.Items)),
			fmt.Sprintf("%.1f%%", plan.VolumeUtilization),
			fmt.Sprintf("%.1f%%", plan.WeightUtilization),
			fmt.Sprintf("%.2f m\xb3", plan.RemainingVolume/1e6),
			fmt.Sprintf("%.0f", plan.RemainingWeight),
		}
		y = drawTableRow(pdf, colWidths, rowData, y, i)
	}

	if len(result.UnplacedItems) > 0 {
		y += 8
		if y > pageHeight-marginBottom-30 {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Items Not Loaded", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 8

		uWidths := []float64{70, 60, 30, 30, 30}
		uHeaders := []string{"Item", "Dimensions", "Weight", "Quantity", "Total kg"}
		y = drawTableHeader(pdf, uWidths, uHeaders, y)

		pdf.SetFont("Helvetica", "", 9)
		for i, it := range result.UnplacedItems {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = drawTableHeader(pdf, uWidths, uHeaders, marginTop)
				pdf.SetFont("Helvetica", "", 9)
			}
			rowData := []string{
				it.Name,
				fmt.Sprintf("%.0f x %.0f x %.0f cm", it.Length, it.Width, it.Height),
				fmt.Sprintf("%.0f kg", it.Weight),
				fmt.Sprintf("%d", it.Quantity),
				fmt.Sprintf("%.0f", it.TotalWeight()),
			}
			y = drawTableRow(pdf, uWidths, rowData, y, i)
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LoadPlanner - Container Loading Optimizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawTableHeader(pdf *fpdf.Fpdf, widths []float64, headers []string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(widths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += widths[i]
	}
	return y + 6
}

func drawTableRow(pdf *fpdf.Fpdf, widths []float64, cells []string, y float64, row int) float64 {
	if row%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(widths[j], 6, cell, "1", 0, "C", true, 0, "")
		xPos += widths[j]
	}
	return y + 6
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

package export

import (
	"fmt"

	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	unplacedSheet = "Unplaced"
)

// PlanSheetName returns the workbook sheet name for the plan at the given
// 1-based index.
func PlanSheetName(index int) string {
	return fmt.Sprintf("Plan %d", index)
}

// ExportWorkbook writes the result to an .xlsx workbook with a Summary
// sheet, one sheet per plan listing every placement, and an Unplaced sheet.
func ExportWorkbook(path string, result model.OptimizationResult) error {
	if len(result.Plans) == 0 {
		return fmt.Errorf("no plans to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeSummarySheet(f, result, headerStyle); err != nil {
		return err
	}
	for _, plan := range result.Plans {
		if err := writePlanSheet(f, plan, headerStyle); err != nil {
			return err
		}
	}
	if err := writeUnplacedSheet(f, result.UnplacedItems, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// writeRows writes rows starting at A1 and styles the first one as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 14)
}

func writeSummarySheet(f *excelize.File, result model.OptimizationResult, headerStyle int) error {
	rows := [][]interface{}{
		{"#", "Container", "Type", "Instance", "Length (cm)", "Width (cm)", "Height (cm)",
			"Items", "Used Volume (m3)", "Volume %", "Used Weight (kg)", "Weight %",
			"Remaining Volume (m3)", "Remaining Weight (kg)"},
	}
	for _, plan := range result.Plans {
		c := plan.Container
		rows = append(rows, []interface{}{
			plan.Index, c.ID, string(c.Type), plan.Instance, c.Length, c.Width, c.Height,
			len(plan.Items), plan.UsedVolume / 1e6, plan.VolumeUtilization,
			plan.UsedWeight, plan.WeightUtilization,
			plan.RemainingVolume / 1e6, plan.RemainingWeight,
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Containers", result.ContainerCount},
		[]interface{}{"Utilization %", result.Utilization},
		[]interface{}{"Units loaded", result.PlacedUnits()},
		[]interface{}{"Weight loaded (kg)", result.TotalWeight()},
		[]interface{}{"Units not loaded", result.UnplacedUnits()},
	)
	return writeRows(f, summarySheet, rows, headerStyle)
}

func writePlanSheet(f *excelize.File, plan model.LoadingPlan, headerStyle int) error {
	sheet := PlanSheetName(plan.Index)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Seq", "Unit", "Cargo", "Name", "X (cm)", "Y (cm)", "Z (cm)",
			"Length (cm)", "Width (cm)", "Height (cm)", "Weight (kg)", "Orientation"},
	}
	for i, it := range plan.Items {
		rows = append(rows, []interface{}{
			i + 1, it.ID, it.CargoID, it.Name,
			it.Position.X, it.Position.Y, it.Position.Z,
			it.Length, it.Width, it.Height, it.Weight, it.Orientation.String(),
		})
	}
	return writeRows(f, sheet, rows, headerStyle)
}

func writeUnplacedSheet(f *excelize.File, items []model.CargoItem, headerStyle int) error {
	if _, err := f.NewSheet(unplacedSheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", unplacedSheet, err)
	}

	rows := [][]interface{}{
		{"Cargo", "Name", "Length (cm)", "Width (cm)", "Height (cm)", "Weight (kg)", "Quantity", "Stackable"},
	}
	for _, it := range items {
		stackable := "no"
		if it.Stackable {
			stackable = "yes"
		}
		rows = append(rows, []interface{}{
			it.ID, it.Name, it.Length, it.Width, it.Height, it.Weight, it.Quantity, stackable,
		})
	}
	return writeRows(f, unplacedSheet, rows, headerStyle)
}

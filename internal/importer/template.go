package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// TemplateHeader is the column layout of the import template.
var TemplateHeader = []string{
	"Name",
	"Length (cm)",
	"Width (cm)",
	"Height (cm)",
	"Weight (kg)",
	"Quantity",
	"Stackable (yes/no)",
}

// templateRows are example lines shipped with the template.
var templateRows = [][]string{
	{"Box A", "100", "80", "60", "50", "10", "yes"},
	{"Pallet B", "120", "100", "140", "200", "5", "no"},
	{"Crate C", "200", "150", "180", "300", "2", "yes"},
}

// WriteCSVTemplate writes the manifest template as comma separated values.
func WriteCSVTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TemplateHeader); err != nil {
		return fmt.Errorf("writing template header: %w", err)
	}
	if err := cw.WriteAll(templateRows); err != nil {
		return fmt.Errorf("writing template rows: %w", err)
	}
	return nil
}

// WriteExcelTemplate writes the manifest template to an .xlsx workbook.
// Numeric example values are stored as numbers.
func WriteExcelTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cargo"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming template sheet: %w", err)
	}

	header := make([]interface{}, len(TemplateHeader))
	for i, h := range TemplateHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing template header: %w", err)
	}

	for i, row := range templateRows {
		values := []interface{}{row[0]}
		for _, cell := range row[1:6] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return fmt.Errorf("template value %q: %w", cell, err)
			}
			values = append(values, v)
		}
		values = append(values, row[6])

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing template row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "G", 16); err != nil {
		return fmt.Errorf("sizing template columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

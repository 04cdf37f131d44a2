// Package importer provides CSV and Excel import functionality for cargo
// manifests. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.CargoItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Height    int
	Weight    int
	Quantity  int
	Stackable int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
// Unit suffixes such as "(cm)" are stripped before matching.
var headerAliases = map[string][]string{
	"name":      {"name", "label", "item", "item name", "description", "desc", "cargo", "product", "sku"},
	"length":    {"length", "len", "l"},
	"width":     {"width", "w"},
	"height":    {"height", "h"},
	"weight":    {"weight", "wt", "kg", "mass", "unit weight", "weight per unit", "gross weight"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "units"},
	"stackable": {"stackable", "stack", "stackable?", "can stack"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// normalizeHeader lowercases a header cell and drops a trailing unit
// suffix, so "Length (cm)" and "Weight [kg]" match "length" and "weight".
func normalizeHeader(cell string) string {
	s := strings.ToLower(strings.TrimSpace(cell))
	if i := strings.IndexAny(s, "(["); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping Name, Length, Width, Height, Weight, Quantity, Stackable and false
// if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:      -1,
		Length:    -1,
		Width:     -1,
		Height:    -1,
		Weight:    -1,
		Quantity:  -1,
		Stackable: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				var target *int
				switch role {
				case "name":
					target = &mapping.Name
				case "length":
					target = &mapping.Length
				case "width":
					target = &mapping.Width
				case "height":
					target = &mapping.Height
				case "weight":
					target = &mapping.Weight
				case "quantity":
					target = &mapping.Quantity
				case "stackable":
					target = &mapping.Stackable
				}
				if *target == -1 {
					*target = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(), false
	}

	return mapping, true
}

func positionalMapping() ColumnMapping {
	return ColumnMapping{
		Name:      0,
		Length:    1,
		Width:     2,
		Height:    3,
		Weight:    4,
		Quantity:  5,
		Stackable: 6,
	}
}

// parseStackable converts a yes/no style flag. It returns the value and
// whether the string was recognized.
func parseStackable(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "x":
		return true, true
	case "", "no", "n", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloatCell(row []string, idx int, rowLabel, column string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, column)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	return v, ""
}

// parseRow extracts a CargoItem from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, lineNum, itemCount int) (model.CargoItem, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Item %d", itemCount+1)
	}

	length, errMsg := parseFloatCell(row, mapping.Length, rowLabel, "length")
	if errMsg != "" {
		return model.CargoItem{}, errMsg, ""
	}
	width, errMsg := parseFloatCell(row, mapping.Width, rowLabel, "width")
	if errMsg != "" {
		return model.CargoItem{}, errMsg, ""
	}
	height, errMsg := parseFloatCell(row, mapping.Height, rowLabel, "height")
	if errMsg != "" {
		return model.CargoItem{}, errMsg, ""
	}
	weight, errMsg := parseFloatCell(row, mapping.Weight, rowLabel, "weight")
	if errMsg != "" {
		return model.CargoItem{}, errMsg, ""
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.CargoItem{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.CargoItem{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	item := model.CargoItem{
		ID:       fmt.Sprintf("item-%d", lineNum),
		Name:     name,
		Length:   length,
		Width:    width,
		Height:   height,
		Weight:   weight,
		Quantity: qty,
	}
	if err := item.Validate(); err != nil {
		return model.CargoItem{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	var warning string
	stackStr := getCell(row, mapping.Stackable)
	if stackable, ok := parseStackable(stackStr); ok {
		item.Stackable = stackable
	} else {
		warning = fmt.Sprintf("%s: Unknown stackable value '%s', defaulting to no", rowLabel, stackStr)
	}

	return item, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cargo items from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports cargo items from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports cargo items from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx/.xlsm/.xls go through
// ImportExcel, everything else through ImportCSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	for _, ext := range []string{".xlsx", ".xlsm", ".xls"} {
		if strings.HasSuffix(lower, ext) {
			return ImportExcel(path)
		}
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into cargo items.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Weight == -1 {
			missing = append(missing, "Weight")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric second column.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		item, errMsg, warning := parseRow(row, mapping, rowLabel, lineNum, len(result.Items))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}

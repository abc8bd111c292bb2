// Package importer reads part and stock lists from CSV, Excel and DXF files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Target selects what the rows of a file describe.
type Target int

const (
	TargetParts Target = iota
	TargetStock
)

func (t Target) String() string {
	if t == TargetStock {
		return "stock"
	}
	return "parts"
}

// Options controls how rows are interpreted.
type Options struct {
	Target Target
	// DefaultThickness fills rows without a thickness value. Zero makes
	// thickness a required column.
	DefaultThickness float64
}

// ImportResult holds the results of an import operation. Only one of Parts
// and Stocks is filled, depending on the target.
type ImportResult struct {
	Parts    []model.PartRequirement
	Stocks   []model.StockDefinition
	Errors   []string
	Warnings []string
}

// Rows returns how many rows were imported.
func (r ImportResult) Rows() int {
	return len(r.Parts) + len(r.Stocks)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label     int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Material  int
	Type      int
	Grain     int
}

type columnRole struct {
	name    string
	aliases []string
	field   func(*ColumnMapping) *int
}

// columnRoles lists accepted header aliases (all lowercase) per role, in
// detection order.
var columnRoles = []columnRole{
	{"label", []string{"label", "name", "part", "part name", "description", "desc", "piece", "item", "stock"},
		func(m *ColumnMapping) *int { return &m.Label }},
	{"length", []string{"length", "len", "l", "long"},
		func(m *ColumnMapping) *int { return &m.Length }},
	{"width", []string{"width", "w", "height", "h", "depth", "breadth"},
		func(m *ColumnMapping) *int { return &m.Width }},
	{"thickness", []string{"thickness", "thick", "thk", "t", "th"},
		func(m *ColumnMapping) *int { return &m.Thickness }},
	{"quantity", []string{"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "on hand"},
		func(m *ColumnMapping) *int { return &m.Quantity }},
	{"material", []string{"material", "mat", "species"},
		func(m *ColumnMapping) *int { return &m.Material }},
	{"type", []string{"type", "material type", "stock type", "kind"},
		func(m *ColumnMapping) *int { return &m.Type }},
	{"grain", []string{"grain", "grain direction", "direction", "grain dir", "orientation"},
		func(m *ColumnMapping) *int { return &m.Grain }},
}

// positionalMapping is used when the first row is not a header:
// Label, Length, Width, Thickness, Quantity, Material, Grain, Type.
var positionalMapping = ColumnMapping{
	Label: 0, Length: 1, Width: 2, Thickness: 3, Quantity: 4, Material: 5, Grain: 6, Type: 7,
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

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, role := range columnRoles {
			if !containsString(role.aliases, normalized) {
				continue
			}
			isHeader = true
			if idx := role.field(&mapping); *idx == -1 {
				*idx = i
			}
			break
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowData is one parsed line, before it becomes a part or a stock row.
type rowData struct {
	label        string
	length       float64
	width        float64
	thickness    float64
	quantity     int
	material     string
	materialType model.MaterialType
	grain        model.Grain
}

func parseNumber(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts one row using the given column mapping.
// Returns the row, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, opts Options) (rowData, string, []string) {
	var d rowData
	var warnings []string
	var msg string

	d.label = getCell(row, mapping.Label)

	if d.length, msg = parseNumber(row, mapping.Length, "length", rowLabel); msg != "" {
		return d, msg, nil
	}
	if d.width, msg = parseNumber(row, mapping.Width, "width", rowLabel); msg != "" {
		return d, msg, nil
	}

	if getCell(row, mapping.Thickness) == "" && opts.DefaultThickness > 0 {
		d.thickness = opts.DefaultThickness
	} else if d.thickness, msg = parseNumber(row, mapping.Thickness, "thickness", rowLabel); msg != "" {
		return d, msg, nil
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return d, fmt.Sprintf("%s: Missing quantity value", rowLabel), nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return d, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
	}
	d.quantity = qty

	if d.length <= 0 || d.width <= 0 || d.thickness <= 0 || d.quantity <= 0 {
		return d, fmt.Sprintf("%s: Length, width, thickness, and quantity must be positive", rowLabel), nil
	}

	d.material = getCell(row, mapping.Material)

	if s := getCell(row, mapping.Type); s != "" {
		mt, ok := model.ParseMaterialType(s)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown material type '%s', defaulting to sheet", rowLabel, s))
		}
		d.materialType = mt
	}

	if s := getCell(row, mapping.Grain); s != "" {
		grain, ok := model.ParseGrain(s)
		if ok {
			d.grain = grain
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown grain direction '%s', defaulting to None", rowLabel, s))
		}
	}

	return d, "", warnings
}

func (d rowData) part() model.PartRequirement {
	p := model.NewPart(d.label, d.length, d.width, d.thickness, d.quantity)
	p.Material = d.material
	p.MaterialType = d.materialType
	p.Grain = d.grain
	return p
}

func (d rowData) stock(n int) model.StockDefinition {
	label := d.label
	if label == "" {
		label = fmt.Sprintf("Stock %d", n+1)
	}
	s := model.NewStock(label, d.length, d.width, d.thickness, d.quantity)
	s.Material = d.material
	s.MaterialType = d.materialType
	s.Grain = d.grain
	return s
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

// ImportFile picks the reader by file extension.
func ImportFile(path string, opts Options) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return ImportCSV(path, opts)
	case ".xlsx", ".xlsm", ".xltx":
		return ImportExcel(path, opts)
	case ".dxf":
		if opts.Target != TargetParts {
			return ImportResult{Errors: []string{"DXF files can only supply parts"}}
		}
		return ImportDXF(path, opts.DefaultThickness)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type '%s'", filepath.Ext(path))}}
	}
}

// ImportCSV imports rows from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, opts Options) ImportResult {
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

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter, opts)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports rows from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
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

	return importFromRows(records, "Line", opts)
}

// ImportExcel imports rows from an Excel workbook.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, opts Options) ImportResult {
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

	return importFromRows(rows, "Row", opts)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row.
func importFromRows(rows [][]string, rowPrefix string, opts Options) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Thickness == -1 && opts.DefaultThickness <= 0 {
			missing = append(missing, "Thickness")
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
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		d, errMsg, warnings := parseRow(row, mapping, rowLabel, opts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		if opts.Target == TargetStock {
			result.Stocks = append(result.Stocks, d.stock(len(result.Stocks)))
		} else {
			result.Parts = append(result.Parts, d.part())
		}
	}

	return result
}

package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	cutListSheet = "Cut List"
	sheetsSheet  = "Sheets"
	offcutsSheet = "Offcuts"
)

var cutListHeader = []interface{}{
	"Sheet", "Stock", "Part", "Ref", "X (mm)", "Y (mm)", "Length (mm)", "Width (mm)", "Rotated", "Grain Aligned",
}

var sheetsHeader = []interface{}{
	"Sheet", "Stock", "Length (mm)", "Width (mm)", "Thickness (mm)", "Material", "Parts", "Used (mm²)", "Waste (mm²)", "Efficiency (%)",
}

var offcutsHeader = []interface{}{
	"Sheet", "X (mm)", "Y (mm)", "Length (mm)", "Width (mm)", "Thickness (mm)", "Material",
}

// ExportExcel writes a workbook with one row per placement, one row per
// consumed sheet, and the reusable offcuts.
func ExportExcel(path string, result model.OptimizationResult) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), cutListSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{sheetsSheet, offcutsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	cutRows := [][]interface{}{cutListHeader}
	sheetRows := [][]interface{}{sheetsHeader}
	for _, su := range result.Sheets {
		for _, p := range su.Placements {
			cutRows = append(cutRows, []interface{}{
				su.SheetID, su.Stock.Label, p.Name, p.Ref.String(),
				p.X, p.Y, p.Width, p.Height, yesNo(p.Rotated), yesNo(p.Aligned),
			})
		}
		sheetRows = append(sheetRows, []interface{}{
			su.SheetID, su.Stock.Label, su.Stock.Length, su.Stock.Width, su.Stock.Thickness,
			su.Stock.Material, len(su.Placements), su.UsedArea, su.WasteArea,
			math.Round(su.Efficiency()*10) / 10,
		})
	}

	offcutRows := [][]interface{}{offcutsHeader}
	for _, o := range model.DetectAllOffcuts(result) {
		offcutRows = append(offcutRows, []interface{}{
			o.SheetID, o.Rect.X, o.Rect.Y, o.Rect.Width, o.Rect.Height, o.Source.Thickness, o.Source.Material,
		})
	}

	for name, rows := range map[string][][]interface{}{
		cutListSheet: cutRows,
		sheetsSheet:  sheetRows,
		offcutsSheet: offcutRows,
	} {
		if err := writeRows(f, name, rows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Package export writes optimization results to PDF layouts, QR-coded part
// labels and Excel cut lists.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/panelcut/internal/model"
)

// partColor represents an RGB color for a placed part.
type partColor struct {
	R, G, B int
}

// partColors is indexed by demand row so identical parts share a color.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(row int) partColor {
	if row < 0 {
		row = -row
	}
	return partColors[row%len(partColors)]
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
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document containing the cut optimization results.
// Each sheet is rendered on its own page with a layout diagram, followed by
// a summary page with overall statistics.
func ExportPDF(path string, result model.OptimizationResult, settings model.CutSettings) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sheet := range result.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, i)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetUsage, sheetIndex int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%.0f x %.0f x %.0f mm)", sheetIndex+1, sheet.SheetID,
		sheet.Stock.Length, sheet.Stock.Width, sheet.Stock.Thickness)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Used area: %.0f mm² | Waste: %.0f mm² | Efficiency: %.1f%% | Grain: %s",
		len(sheet.Placements), sheet.UsedArea, sheet.WasteArea, sheet.Efficiency(), sheet.Stock.Grain)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/sheet.Stock.Length, drawHeight/sheet.Stock.Width)

	canvasW := sheet.Stock.Length * scale
	canvasH := sheet.Stock.Width * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Stock background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawOffcuts(pdf, model.DetectOffcuts(sheet, sheetIndex), scale, offsetX, offsetY)

	for _, p := range sheet.Placements {
		col := colorFor(p.Ref.Row)
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Name
			dims := fmt.Sprintf("%.0fx%.0f", p.Width, p.Height)
			if p.Rotated {
				dims += " R"
			}

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet.Stock, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, sheet, offsetY+canvasH+5)
}

// drawOffcuts marks reusable remnants with a hatched outline.
func drawOffcuts(pdf *fpdf.Fpdf, offcuts []model.Offcut, scale, offsetX, offsetY float64) {
	for _, o := range offcuts {
		zx := offsetX + o.Rect.X*scale
		zy := offsetY + o.Rect.Y*scale
		zw := o.Rect.Width * scale
		zh := o.Rect.Height * scale

		pdf.SetFillColor(235, 220, 190)
		pdf.SetDrawColor(120, 90, 40)
		pdf.SetLineWidth(0.3)
		pdf.Rect(zx, zy, zw, zh, "FD")
		drawHatchPattern(pdf, zx, zy, zw, zh)

		if zw > 20 && zh > 8 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(120, 90, 40)
			text := fmt.Sprintf("OFFCUT %.0fx%.0f", o.Rect.Width, o.Rect.Height)
			labelW := pdf.GetStringWidth(text)
			if labelW < zw-2 {
				pdf.SetXY(zx+(zw-labelW)/2, zy+zh/2-2)
				pdf.CellFormat(labelW, 4, text, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds length and width labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.StockDefinition, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f mm", stock.Length)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+1)
	pdf.CellFormat(lw, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f mm", stock.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	ww := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-ww/2, offsetY+canvasH/2-2)
	pdf.CellFormat(ww, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of placed parts below the sheet.
func drawPartsLegend(pdf *fpdf.Fpdf, sheet model.SheetUsage, startY float64) {
	if len(sheet.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range sheet.Placements {
		col := colorFor(p.Ref.Row)
		label := fmt.Sprintf("%s #%s (%.0fx%.0f)", p.Name, p.Ref, p.Width, p.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

type summaryItem struct {
	label string
	value string
}

// summaryItems lists the overall statistics shown on the summary page.
func summaryItems(result model.OptimizationResult) []summaryItem {
	offcuts := model.DetectAllOffcuts(result)
	return []summaryItem{
		{"Total Sheets Used", fmt.Sprintf("%d", result.TotalSheets)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Total Parts Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Total Waste", fmt.Sprintf("%.3f m²", result.TotalWaste/1e6)},
		{"Reusable Offcuts", fmt.Sprintf("%d (%.3f m²)", len(offcuts), model.TotalOffcutArea(offcuts)/1e6)},
	}
}

// settingsItems lists the cut settings shown on the summary page.
func settingsItems(settings model.CutSettings) []summaryItem {
	w := settings.EffectiveWeights()
	return []summaryItem{
		{"Kerf Width", fmt.Sprintf("%.1f mm", settings.KerfWidth)},
		{"Fit Mode", string(settings.FitMode)},
		{"Philosophy", settings.Philosophy.String()},
		{"Weights", fmt.Sprintf("yield %.2f / cuts %.2f / grain %.2f", w.Yield, w.CutSimplicity, w.GrainMatch)},
		{"Algorithm", string(settings.Algorithm)},
		{"Downsize Sheets", fmt.Sprintf("%t", settings.DownsizeSheets)},
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.OptimizationResult, settings model.CutSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems(result) {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{35, 60, 50, 20, 30, 72}
	headers := []string{"Sheet", "Stock", "Dimensions", "Parts", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, sheet := range result.Sheets {
		// Continue the table on a fresh page.
		if y > pageHeight-marginBottom-60 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			sheet.SheetID,
			sheet.Stock.Label,
			fmt.Sprintf("%.0f x %.0f x %.0f mm", sheet.Stock.Length, sheet.Stock.Width, sheet.Stock.Thickness),
			fmt.Sprintf("%d", len(sheet.Placements)),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
			fmt.Sprintf("%.0f / %.0f mm²", sheet.UsedArea, sheet.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut Settings", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems(settings) {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by panelcut - panel cutting optimizer", "", 0, "C", false, 0, "")
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

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/hotelrisk/riskadvisor/internal/model"
)

// Practice branding used on every PDF page.
const (
	pdfBrandLine  = "HUB International  |  Hotel Franchise Practice"
	pdfPageWidth  = 190.0
	pdfLeftMargin = 10.0
)

// RenderPDF renders a report document as a paginated executive PDF at path.
func RenderPDF(doc *model.ReportDocument, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(0, 8, pdfBrandLine, "", 1, "L", false, 0, "")
		pdf.SetDrawColor(0, 102, 204)
		pdf.SetLineWidth(0.5)
		pdf.Line(pdfLeftMargin, pdf.GetY(), pdfLeftMargin+pdfPageWidth, pdf.GetY())
		pdf.Ln(4)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("Confidential  |  Page %d/{nb}  |  Generated %s", pdf.PageNo(), doc.GeneratedAt.Format("01/02/2006"))
		pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	for _, section := range doc.Sections {
		switch section.Kind {
		case model.SectionNarrative:
			renderPDFNarrative(pdf, section.Narrative)
		case model.SectionTotals:
			renderPDFTotals(pdf, section.Totals)
		case model.SectionTable:
			renderPDFTable(pdf, section.Table)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return &RenderError{Format: "pdf", Err: err}
	}
	return nil
}

func renderPDFNarrative(pdf *fpdf.Fpdf, narrative *model.Narrative) {
	if narrative.Heading != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(0, 12, sanitizePDF(narrative.Heading), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, sanitizePDF(narrative.Text), "", "L", false)
	pdf.Ln(3)
}

func renderPDFTotals(pdf *fpdf.Fpdf, totals *model.Totals) {
	pdf.SetFillColor(240, 245, 250)
	pdf.SetDrawColor(0, 102, 204)
	pdf.Rect(pdfLeftMargin, pdf.GetY(), pdfPageWidth, 30, "DF")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, "  Executive Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)

	const colW = 63.0
	pdf.CellFormat(colW, 6, "  Total Claims: "+strconv.Itoa(totals.TotalClaims), "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, 6, "Open: "+strconv.Itoa(totals.OpenCount), "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, 6, "Closed: "+strconv.Itoa(totals.ClosedCount), "", 1, "L", false, 0, "")

	pdf.CellFormat(colW, 6, "  Total Incurred: "+model.FormatMoney(totals.TotalIncurred), "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, 6, "Total Paid: "+model.FormatMoney(totals.TotalPaid), "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, 6, "Total Reserved: "+model.FormatMoney(totals.TotalReserved), "", 1, "L", false, 0, "")

	pdf.CellFormat(colW, 6, "  Attorney Rep: "+strconv.Itoa(totals.AttorneyCount)+" claim(s)", "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func renderPDFTable(pdf *fpdf.Fpdf, table *model.Table) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 9, sanitizePDF(table.Title), "", 1, "L", false, 0, "")

	widths := columnWidths(table.Columns)

	// Header row.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range table.Columns {
		pdf.CellFormat(widths[i], 7, sanitizePDF(col), "1", 0, alignFor(col), true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for idx, row := range table.Rows {
		if idx%2 == 0 {
			pdf.SetFillColor(248, 248, 248)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			pdf.CellFormat(widths[i], 6, sanitizePDF(fitCell(cell, widths[i])), "1", 0, alignFor(table.Columns[i]), true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(5)
}

// columnWidths distributes the usable page width across columns, giving the
// detail table its fixed layout and splitting evenly otherwise.
func columnWidths(columns []string) []float64 {
	if len(columns) == len(detailColumns) {
		return []float64{25, 28, 16, 24, 53, 22, 22}
	}

	widths := make([]float64, len(columns))
	each := pdfPageWidth / float64(len(columns))
	for i := range widths {
		widths[i] = each
	}
	return widths
}

func alignFor(column string) string {
	switch column {
	case "Incurred", "Paid", "Claims":
		return "R"
	}
	return "L"
}

// fitCell truncates cell text that would overflow a narrow column. Roughly
// 2mm per character at the table font size.
func fitCell(s string, width float64) string {
	maxChars := int(width / 2)
	if maxChars < 4 || len(s) <= maxChars {
		return s
	}
	return s[:maxChars-2] + ".."
}

// sanitizePDF maps characters outside the core-font codepage to safe ASCII
// equivalents.
var pdfReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
	"•", "*", "…", "...",
	" ", " ",
)

func sanitizePDF(s string) string {
	s = pdfReplacer.Replace(s)
	var b strings.Builder
	for _, r := range s {
		if r <= 255 {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}


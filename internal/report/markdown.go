package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// RenderError wraps a failure in one of the document renderers.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// RenderMarkdown renders a report document as a Markdown string.
func RenderMarkdown(doc *model.ReportDocument, includeFooter bool) string {
	var b strings.Builder

	for _, section := range doc.Sections {
		switch section.Kind {
		case model.SectionNarrative:
			if section.Narrative.Heading == doc.Title {
				fmt.Fprintf(&b, "# %s\n\n", section.Narrative.Heading)
			} else if section.Narrative.Heading != "" {
				fmt.Fprintf(&b, "## %s\n\n", section.Narrative.Heading)
			}
			b.WriteString(section.Narrative.Text)
			b.WriteString("\n\n")

		case model.SectionTotals:
			tot := section.Totals
			b.WriteString("## Summary\n\n")
			fmt.Fprintf(&b, "| Total Claims | Open | Closed | Total Incurred | Total Paid | Total Reserved |\n")
			fmt.Fprintf(&b, "|---|---|---|---|---|---|\n")
			fmt.Fprintf(&b, "| %d | %d | %d | %s | %s | %s |\n\n",
				tot.TotalClaims, tot.OpenCount, tot.ClosedCount,
				model.FormatMoney(tot.TotalIncurred), model.FormatMoney(tot.TotalPaid), model.FormatMoney(tot.TotalReserved))
			if tot.AttorneyCount > 0 {
				fmt.Fprintf(&b, "Attorney representation on %d claim(s).\n\n", tot.AttorneyCount)
			}

		case model.SectionTable:
			table := section.Table
			fmt.Fprintf(&b, "## %s\n\n", table.Title)
			fmt.Fprintf(&b, "| %s |\n", strings.Join(table.Columns, " | "))
			b.WriteString("|" + strings.Repeat("---|", len(table.Columns)) + "\n")
			for _, row := range table.Rows {
				fmt.Fprintf(&b, "| %s |\n", strings.Join(row, " | "))
			}
			b.WriteString("\n")
		}
	}

	if includeFooter {
		fmt.Fprintf(&b, "---\n\n*Generated %s*\n", doc.GeneratedAt.Format("January 2, 2006"))
	}

	return b.String()
}

// WriteMarkdown renders the document and writes it to path.
func WriteMarkdown(doc *model.ReportDocument, path string, includeFooter bool) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(doc, includeFooter)), 0644); err != nil {
		return &RenderError{Format: "markdown", Err: err}
	}
	return nil
}

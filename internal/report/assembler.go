// Package report assembles aggregated query results into the executive
// report document and renders it for chat, Markdown, and PDF consumers.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// Detail table layout, fixed across renderers.
var detailColumns = []string{"Date of Loss", "Claim #", "Status", "Category", "Property", "Incurred", "Paid"}

// Assemble arranges aggregated results and record details into the fixed
// document structure: header narrative, totals block, breakdowns by status,
// category and policy year, then the detail table in evaluator output order.
// No section is omitted for empty results; assembly is atomic and the
// returned document is immutable by convention.
func Assemble(clientLabel string, spec *model.FilterSpecification, agg model.Aggregate, matches []model.ClaimRecord, requestID string, generatedAt time.Time) *model.ReportDocument {
	doc := &model.ReportDocument{
		Title:       "Executive Claims Report",
		ClientLabel: clientLabel,
		RequestID:   requestID,
		GeneratedAt: generatedAt,
	}

	doc.Sections = append(doc.Sections, model.Section{
		Kind: model.SectionNarrative,
		Narrative: &model.Narrative{
			Heading: doc.Title,
			Text:    headerText(clientLabel, spec),
		},
	})

	doc.Sections = append(doc.Sections, model.Section{
		Kind: model.SectionTotals,
		Totals: &model.Totals{
			TotalClaims:   agg.TotalCount,
			OpenCount:     agg.ByStatus[model.StatusOpen],
			ClosedCount:   agg.ByStatus[model.StatusClosed],
			TotalIncurred: agg.TotalAmount,
			TotalPaid:     agg.TotalPaid,
			TotalReserved: agg.TotalReserved,
			AttorneyCount: agg.AttorneyCount,
		},
	})

	doc.Sections = append(doc.Sections,
		model.Section{Kind: model.SectionTable, Table: statusTable(agg)},
		model.Section{Kind: model.SectionTable, Table: categoryTable(agg)},
		model.Section{Kind: model.SectionTable, Table: policyYearTable(agg)},
		model.Section{Kind: model.SectionTable, Table: detailTable(matches)},
	)

	return doc
}

// AttachCommentary inserts a commentary narrative after the totals block.
// The fixed section order of the base document is otherwise unchanged.
func AttachCommentary(doc *model.ReportDocument, text string) {
	commentary := model.Section{
		Kind: model.SectionNarrative,
		Narrative: &model.Narrative{
			Heading: "Commentary",
			Text:    text,
		},
	}

	for i, section := range doc.Sections {
		if section.Kind == model.SectionTotals {
			doc.Sections = append(doc.Sections[:i+1],
				append([]model.Section{commentary}, doc.Sections[i+1:]...)...)
			return
		}
	}
	doc.Sections = append(doc.Sections, commentary)
}

func headerText(clientLabel string, spec *model.FilterSpecification) string {
	if !spec.HasFilters() {
		return fmt.Sprintf("Client: %s. No active filters beyond client name.", clientLabel)
	}
	return fmt.Sprintf("Client: %s. Filters: %s.", clientLabel, spec.Describe())
}

func statusTable(agg model.Aggregate) *model.Table {
	table := &model.Table{
		Title:   "Claims by Status",
		Columns: []string{"Status", "Claims"},
		Rows:    [][]string{},
	}

	statuses := make([]string, 0, len(agg.ByStatus))
	for status := range agg.ByStatus {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)

	for _, status := range statuses {
		count := agg.ByStatus[model.ClaimStatus(status)]
		table.Rows = append(table.Rows, []string{status, strconv.Itoa(count)})
	}
	return table
}

func categoryTable(agg model.Aggregate) *model.Table {
	table := &model.Table{
		Title:   "Claims by Category",
		Columns: []string{"Category", "Claims"},
		Rows:    [][]string{},
	}

	categories := make([]string, 0, len(agg.ByCategory))
	for category := range agg.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		table.Rows = append(table.Rows, []string{category, strconv.Itoa(agg.ByCategory[category])})
	}
	return table
}

func policyYearTable(agg model.Aggregate) *model.Table {
	table := &model.Table{
		Title:   "Claims by Policy Year",
		Columns: []string{"Policy Year", "Claims"},
		Rows:    [][]string{},
	}

	years := make([]int, 0, len(agg.ByPolicyYear))
	for year := range agg.ByPolicyYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	for _, year := range years {
		table.Rows = append(table.Rows, []string{strconv.Itoa(year), strconv.Itoa(agg.ByPolicyYear[year])})
	}
	return table
}

func detailTable(matches []model.ClaimRecord) *model.Table {
	table := &model.Table{
		Title:   "Claim Detail",
		Columns: detailColumns,
		Rows:    [][]string{},
	}

	for _, rec := range matches {
		table.Rows = append(table.Rows, []string{
			rec.IncidentDate,
			rec.ClaimNumber,
			string(rec.Status),
			rec.Category,
			rec.Property,
			model.FormatMoney(rec.Amount),
			model.FormatMoney(rec.Paid),
		})
	}
	return table
}

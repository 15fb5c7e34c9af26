package report

import (
	"strings"
	"testing"
	"time"

	"github.com/hotelrisk/riskadvisor/internal/aggregate"
	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/shopspring/decimal"
)

var testTime = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func assembleFor(t *testing.T, spec *model.FilterSpecification, matches []model.ClaimRecord) *model.ReportDocument {
	t.Helper()
	agg := aggregate.Compute(matches)
	return Assemble(spec.ClientMatcher, spec, agg, matches, "req-1", testTime)
}

func sectionKinds(doc *model.ReportDocument) []model.SectionKind {
	out := make([]model.SectionKind, len(doc.Sections))
	for i, s := range doc.Sections {
		out[i] = s.Kind
	}
	return out
}

func TestAssemble_FixedSectionOrder(t *testing.T) {
	spec := &model.FilterSpecification{ClientMatcher: "Jasmin"}
	doc := assembleFor(t, spec, []model.ClaimRecord{
		{ClientName: "Jasmin", Status: model.StatusOpen, Category: "Liability", PolicyYear: 2026, Amount: decimal.NewFromInt(100)},
	})

	want := []model.SectionKind{
		model.SectionNarrative,
		model.SectionTotals,
		model.SectionTable, // by status
		model.SectionTable, // by category
		model.SectionTable, // by policy year
		model.SectionTable, // detail
	}
	got := sectionKinds(doc)
	if len(got) != len(want) {
		t.Fatalf("Expected %d sections, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Section %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	titles := []string{}
	for _, s := range doc.Sections {
		if s.Kind == model.SectionTable {
			titles = append(titles, s.Table.Title)
		}
	}
	wantTitles := []string{"Claims by Status", "Claims by Category", "Claims by Policy Year", "Claim Detail"}
	for i := range wantTitles {
		if titles[i] != wantTitles[i] {
			t.Errorf("Table %d: expected title %q, got %q", i, wantTitles[i], titles[i])
		}
	}
}

func TestAssemble_NoFilterNarrative(t *testing.T) {
	spec := &model.FilterSpecification{ClientMatcher: "Jasmin"}
	doc := assembleFor(t, spec, nil)

	text := doc.Sections[0].Narrative.Text
	if !strings.Contains(text, "No active filters beyond client name") {
		t.Errorf("Expected explicit no-filter narrative, got %q", text)
	}
}

func TestAssemble_FilterNarrativeClauseOrder(t *testing.T) {
	spec := &model.FilterSpecification{
		ClientMatcher: "Jasmin",
		Status:        model.StatusOpen,
		Category:      "Property",
		Amount:        &model.AmountPredicate{Operator: model.OpGreaterThan, Threshold: decimal.NewFromInt(25000)},
		Time:          &model.TimeWindow{PolicyYearsBack: 5},
	}
	doc := assembleFor(t, spec, nil)

	text := doc.Sections[0].Narrative.Text
	wantOrder := []string{"open claims", "Property claims", "over $25,000", "from the last 5 policy years"}
	last := -1
	for _, clause := range wantOrder {
		idx := strings.Index(text, clause)
		if idx < 0 {
			t.Fatalf("Expected clause %q in narrative %q", clause, text)
		}
		if idx < last {
			t.Errorf("Clause %q out of order in narrative %q", clause, text)
		}
		last = idx
	}
}

func TestAssemble_EmptyResultDocument(t *testing.T) {
	spec := &model.FilterSpecification{ClientMatcher: "Nobody"}
	doc := assembleFor(t, spec, nil)

	if len(doc.Sections) != 6 {
		t.Fatalf("Expected all 6 sections for an empty result, got %d", len(doc.Sections))
	}

	totals := doc.Sections[1].Totals
	if totals.TotalClaims != 0 || !totals.TotalIncurred.IsZero() {
		t.Errorf("Expected zero-valued totals block, got %+v", totals)
	}

	detail := doc.Sections[5].Table
	if len(detail.Columns) == 0 {
		t.Error("Expected detail table header row even with no matches")
	}
	if detail.Rows == nil || len(detail.Rows) != 0 {
		t.Errorf("Expected empty (non-nil) detail rows, got %v", detail.Rows)
	}
}

func TestAssemble_PolicyYearRowsDescending(t *testing.T) {
	spec := &model.FilterSpecification{ClientMatcher: "Jasmin"}
	doc := assembleFor(t, spec, []model.ClaimRecord{
		{ClientName: "Jasmin", Status: model.StatusOpen, PolicyYear: 2024, Amount: decimal.NewFromInt(1)},
		{ClientName: "Jasmin", Status: model.StatusOpen, PolicyYear: 2026, Amount: decimal.NewFromInt(1)},
		{ClientName: "Jasmin", Status: model.StatusOpen, PolicyYear: 2025, Amount: decimal.NewFromInt(1)},
	})

	rows := doc.Sections[4].Table.Rows
	wantYears := []string{"2026", "2025", "2024"}
	if len(rows) != len(wantYears) {
		t.Fatalf("Expected %d rows, got %d", len(wantYears), len(rows))
	}
	for i, row := range rows {
		if row[0] != wantYears[i] {
			t.Errorf("Row %d: expected year %s, got %s", i, wantYears[i], row[0])
		}
	}
}

func TestAssemble_DetailRowsPreserveMatchOrder(t *testing.T) {
	spec := &model.FilterSpecification{ClientMatcher: "Jasmin"}
	matches := []model.ClaimRecord{
		{ClientName: "Jasmin", ClaimNumber: "C-2", Status: model.StatusOpen, Amount: decimal.NewFromInt(200)},
		{ClientName: "Jasmin", ClaimNumber: "C-1", Status: model.StatusOpen, Amount: decimal.NewFromInt(100)},
	}
	doc := assembleFor(t, spec, matches)

	rows := doc.Sections[5].Table.Rows
	if rows[0][1] != "C-2" || rows[1][1] != "C-1" {
		t.Errorf("Expected detail rows in match order, got %v", rows)
	}
	if rows[0][5] != "$200" {
		t.Errorf("Expected formatted incurred $200, got %q", rows[0][5])
	}
}

func TestRenderChat_ContainsSummaryAndTables(t *testing.T) {
	spec := &model.FilterSpecification{ClientMatcher: "Jasmin", Status: model.StatusOpen}
	doc := assembleFor(t, spec, []model.ClaimRecord{
		{ClientName: "Jasmin Hotels", ClaimNumber: "CLM-1", Status: model.StatusOpen, Category: "Liability", PolicyYear: 2026, Amount: decimal.NewFromInt(30000)},
	})

	text := RenderChat(doc)
	for _, want := range []string{"Executive Claims Report", "Total Claims: 1", "$30,000", "Claims by Status", "Claim Detail"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected chat rendering to contain %q\n%s", want, text)
		}
	}
}

func TestRenderMarkdown_TableShape(t *testing.T) {
	spec := &model.FilterSpecification{ClientMatcher: "Jasmin"}
	doc := assembleFor(t, spec, nil)

	md := RenderMarkdown(doc, true)
	if !strings.Contains(md, "# Executive Claims Report") {
		t.Error("Expected top-level heading in Markdown output")
	}
	if !strings.Contains(md, "| Date of Loss | Claim # | Status | Category | Property | Incurred | Paid |") {
		t.Error("Expected detail table header row in Markdown output")
	}
	if !strings.Contains(md, "Generated August 30, 2026") {
		t.Error("Expected footer with generation date")
	}
}

func TestSplitMessage(t *testing.T) {
	text := strings.Repeat("line one\n", 100)
	chunks := SplitMessage(text, 200)

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("Chunk %d exceeds limit: %d chars", i, len(chunk))
		}
	}
	if got := strings.Join(chunks, "\n") + "\n"; strings.Count(got, "line one") != 100 {
		t.Errorf("Expected no content lost in split, got %d lines", strings.Count(got, "line one"))
	}
}

func TestFormatClaimCard_Developments(t *testing.T) {
	paid, _ := decimal.NewFromString("5000")
	rec := model.ClaimRecord{
		ClaimNumber: "CLM-9",
		Status:      model.StatusOpen,
		Category:    "Liability",
		Amount:      decimal.NewFromInt(30000),
		Developments: []model.Valuation{
			{Date: "March 1, 2025", Paid: paid, TotalIncurred: decimal.NewFromInt(20000)},
			{Date: "June 1, 2025", Paid: paid, TotalIncurred: decimal.NewFromInt(30000)},
		},
	}

	card := FormatClaimCard(rec)
	if !strings.Contains(card, "Claims Development") {
		t.Error("Expected claims development section in card")
	}
	if !strings.Contains(card, "March 1, 2025: *$20,000* (Paid: $5,000)") {
		t.Errorf("Expected formatted valuation line, got:\n%s", card)
	}
}

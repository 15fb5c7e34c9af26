package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SectionKind discriminates the section variants of a ReportDocument.
type SectionKind string

const (
	SectionNarrative SectionKind = "narrative"
	SectionTotals    SectionKind = "totals"
	SectionTable     SectionKind = "table"
)

// ReportDocument is the renderer-agnostic executive report model. It is built
// once per report request, immutable after assembly, and consumed exactly
// once by a renderer.
type ReportDocument struct {
	Title       string    `json:"title"`
	ClientLabel string    `json:"client_label"`
	RequestID   string    `json:"request_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Sections    []Section `json:"sections"`
}

// Section is one ordered element of a report. Exactly one of the payload
// fields is set, according to Kind.
type Section struct {
	Kind      SectionKind `json:"kind"`
	Narrative *Narrative  `json:"narrative,omitempty"`
	Totals    *Totals     `json:"totals,omitempty"`
	Table     *Table      `json:"table,omitempty"`
}

// Narrative is a free-text block with an optional heading.
type Narrative struct {
	Heading string `json:"heading,omitempty"`
	Text    string `json:"text"`
}

// Totals is the executive summary block.
type Totals struct {
	TotalClaims   int             `json:"total_claims"`
	OpenCount     int             `json:"open_count"`
	ClosedCount   int             `json:"closed_count"`
	TotalIncurred decimal.Decimal `json:"total_incurred"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalReserved decimal.Decimal `json:"total_reserved"`
	AttorneyCount int             `json:"attorney_count"`
}

// Table is an ordered set of rows under fixed columns. A table with zero rows
// is still rendered with its header row.
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

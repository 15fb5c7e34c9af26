package model

import "github.com/shopspring/decimal"

// ClaimStatus is the lifecycle state of a claim in the Consulting system.
type ClaimStatus string

const (
	StatusOpen   ClaimStatus = "Open"
	StatusClosed ClaimStatus = "Closed"
)

// ClaimRecord is an immutable snapshot of a single incident/claim entry,
// fetched per query and never cached across queries.
type ClaimRecord struct {
	ID           string          `json:"id"`
	ClaimNumber  string          `json:"claim_number"`
	ClientName   string          `json:"client_name"`
	Status       ClaimStatus     `json:"status"`
	Category     string          `json:"category"`                // canonical claim type, e.g. "Liability", "Property"
	Amount       decimal.Decimal `json:"amount"`                  // total incurred, currency-denominated
	Paid         decimal.Decimal `json:"paid"`
	Reserved     decimal.Decimal `json:"reserved"`
	PolicyYear   int             `json:"policy_year"`
	IncidentDate string          `json:"incident_date,omitempty"` // date of loss as stored, e.g. "2023-08-14"
	ClosedDate   string          `json:"closed_date,omitempty"`

	// Detail fields carried through to the executive report.
	Property     string          `json:"property,omitempty"` // DBA of the location
	Corporate    string          `json:"corporate,omitempty"`
	Claimant     string          `json:"claimant,omitempty"`
	Cause        string          `json:"cause,omitempty"`
	Hazard       string          `json:"hazard,omitempty"`
	Location     string          `json:"location,omitempty"`
	Description  string          `json:"description,omitempty"`
	Carrier      string          `json:"carrier,omitempty"`
	PolicyNumber string          `json:"policy_number,omitempty"`
	AttorneyRep  bool            `json:"attorney_rep"`
	Developments []Valuation     `json:"developments,omitempty"`
}

// Valuation is a single dated entry in a claim's financial development
// history, parsed from the activity rollup.
type Valuation struct {
	Date          string          `json:"date"`
	Paid          decimal.Decimal `json:"paid"`
	Reserved      decimal.Decimal `json:"reserved"`
	Expenses      decimal.Decimal `json:"expenses"`
	TotalIncurred decimal.Decimal `json:"total_incurred"`
}

package model

import "github.com/shopspring/decimal"

// Aggregate holds the summary statistics computed over a matched record set.
// It is derived per query and never mutated in place.
type Aggregate struct {
	TotalCount    int                 `json:"total_count"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	TotalPaid     decimal.Decimal     `json:"total_paid"`
	TotalReserved decimal.Decimal     `json:"total_reserved"`
	AttorneyCount int                 `json:"attorney_count"`
	ByStatus      map[ClaimStatus]int `json:"by_status"`
	ByCategory    map[string]int      `json:"by_category"`
	ByPolicyYear  map[int]int         `json:"by_policy_year"`
}

// NewAggregate returns a zero-valued aggregate with initialized mappings, the
// result for an empty match set.
func NewAggregate() Aggregate {
	return Aggregate{
		TotalAmount:   decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalReserved: decimal.Zero,
		ByStatus:      make(map[ClaimStatus]int),
		ByCategory:    make(map[string]int),
		ByPolicyYear:  make(map[int]int),
	}
}

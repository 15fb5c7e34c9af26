// Package aggregate computes summary statistics over matched claim sets.
package aggregate

import "github.com/hotelrisk/riskadvisor/internal/model"

// Compute derives the summary statistics for a matched record set in a
// single pass. Pure function: empty input yields a zero aggregate with empty
// mappings, never an error. All currency sums use exact decimal arithmetic.
func Compute(matches []model.ClaimRecord) model.Aggregate {
	agg := model.NewAggregate()

	for _, rec := range matches {
		agg.TotalCount++
		agg.TotalAmount = agg.TotalAmount.Add(rec.Amount)
		agg.TotalPaid = agg.TotalPaid.Add(rec.Paid)
		agg.TotalReserved = agg.TotalReserved.Add(rec.Reserved)
		if rec.AttorneyRep {
			agg.AttorneyCount++
		}

		agg.ByStatus[rec.Status]++
		if rec.Category != "" {
			agg.ByCategory[rec.Category]++
		}
		if rec.PolicyYear != 0 {
			agg.ByPolicyYear[rec.PolicyYear]++
		}
	}

	return agg
}

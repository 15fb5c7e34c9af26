package filter

import (
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// Evaluate applies a filter specification against a sequence of claim
// records and returns the matching subset in the input order. All present
// predicates are ANDed; an absent predicate is a wildcard. The result is
// always a subset of records; no re-sorting occurs.
func Evaluate(spec *model.FilterSpecification, records []model.ClaimRecord, currentPolicyYear int) []model.ClaimRecord {
	matches := make([]model.ClaimRecord, 0, len(records))
	for _, rec := range records {
		if Matches(spec, rec, currentPolicyYear) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Matches reports whether a single record satisfies every present predicate
// of the specification.
func Matches(spec *model.FilterSpecification, rec model.ClaimRecord, currentPolicyYear int) bool {
	if !strings.Contains(strings.ToLower(rec.ClientName), strings.ToLower(spec.ClientMatcher)) {
		return false
	}

	if spec.Status != "" && rec.Status != spec.Status {
		return false
	}

	if spec.Category != "" && !strings.EqualFold(rec.Category, spec.Category) {
		return false
	}

	if spec.Amount != nil {
		cmp := rec.Amount.Cmp(spec.Amount.Threshold)
		switch spec.Amount.Operator {
		case model.OpGreaterThan:
			if cmp <= 0 {
				return false
			}
		case model.OpLessThan:
			if cmp >= 0 {
				return false
			}
		case model.OpEqualTo:
			if cmp != 0 {
				return false
			}
		}
	}

	if spec.Time != nil {
		// Strictly within the last N policy years, inclusive of the
		// current one: currentYear-N itself is out.
		if spec.Time.PolicyYearsBack > 0 &&
			currentPolicyYear-rec.PolicyYear >= spec.Time.PolicyYearsBack {
			return false
		}
		if spec.Time.SinceYear > 0 && rec.PolicyYear < spec.Time.SinceYear {
			return false
		}
	}

	return true
}

package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ComparisonOperator is the relation applied between a claim amount and a
// query threshold.
type ComparisonOperator string

const (
	OpGreaterThan ComparisonOperator = "greater_than"
	OpLessThan    ComparisonOperator = "less_than"
	OpEqualTo     ComparisonOperator = "equal_to"
)

// AmountPredicate compares a claim's incurred amount against a threshold.
type AmountPredicate struct {
	Operator  ComparisonOperator `json:"operator"`
	Threshold decimal.Decimal    `json:"threshold"`
}

// TimeWindow restricts matches by policy year. PolicyYearsBack keeps claims
// strictly within the last N policy years counting back from (and including)
// the current one; SinceYear is an absolute floor. Zero means unset. Both may
// be set, in which case they are ANDed like every other predicate.
type TimeWindow struct {
	PolicyYearsBack int `json:"policy_years_back,omitempty"`
	SinceYear       int `json:"since_year,omitempty"`
}

// FilterSpecification is the structured, validated representation of a
// free-text query's intent. ClientMatcher is always present and non-empty;
// every other field is independently optional and conjunctive.
type FilterSpecification struct {
	ClientMatcher string           `json:"client_matcher"`
	Status        ClaimStatus      `json:"status,omitempty"`   // "" = any status
	Category      string           `json:"category,omitempty"` // "" = any category
	Amount        *AmountPredicate `json:"amount,omitempty"`
	Time          *TimeWindow      `json:"time,omitempty"`
}

// HasFilters reports whether any predicate beyond the client matcher is set.
func (s *FilterSpecification) HasFilters() bool {
	return s.Status != "" || s.Category != "" || s.Amount != nil || s.Time != nil
}

// Describe returns the active filters as a human-readable clause list in the
// fixed order status, category, amount, time. Empty when only the client
// matcher is set.
func (s *FilterSpecification) Describe() string {
	var parts []string

	if s.Status != "" {
		parts = append(parts, strings.ToLower(string(s.Status))+" claims")
	}
	if s.Category != "" {
		parts = append(parts, s.Category+" claims")
	}
	if s.Amount != nil {
		switch s.Amount.Operator {
		case OpGreaterThan:
			parts = append(parts, "over $"+groupThousands(s.Amount.Threshold))
		case OpLessThan:
			parts = append(parts, "under $"+groupThousands(s.Amount.Threshold))
		case OpEqualTo:
			parts = append(parts, "exactly $"+groupThousands(s.Amount.Threshold))
		}
	}
	if s.Time != nil {
		if s.Time.PolicyYearsBack > 0 {
			parts = append(parts, fmt.Sprintf("from the last %d policy years", s.Time.PolicyYearsBack))
		}
		if s.Time.SinceYear > 0 {
			parts = append(parts, fmt.Sprintf("since policy year %d", s.Time.SinceYear))
		}
	}

	return strings.Join(parts, ", ")
}

// groupThousands renders a decimal with thousands separators and no cents,
// matching the report money format.
func groupThousands(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatMoney renders an amount as a whole-dollar figure with thousands
// separators, e.g. "$25,000".
func FormatMoney(d decimal.Decimal) string {
	s := groupThousands(d)
	if strings.HasPrefix(s, "-") {
		return "-$" + strings.TrimPrefix(s, "-")
	}
	return "$" + s
}

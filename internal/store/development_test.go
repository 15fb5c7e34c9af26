package store

import (
	"testing"

	"github.com/shopspring/decimal"
)

const sampleRollup = `March 1, 2025 Valuation
Paid: $5,000
Reserved: $15,000
Expenses: $500
Total Incurred: $20,000
[[Break]]
June 1, 2025 Valuation
Paid: $12,000.50
Reserved: $17,999.50
Total Incurred: $30,000
[[Break]]
Adjuster phone call, no valuation change`

func TestParseDevelopments(t *testing.T) {
	valuations := ParseDevelopments(sampleRollup)

	if len(valuations) != 2 {
		t.Fatalf("Expected 2 valuations, got %d", len(valuations))
	}

	first := valuations[0]
	if first.Date != "March 1, 2025" {
		t.Errorf("Expected date 'March 1, 2025', got %q", first.Date)
	}
	if !first.Paid.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected paid 5000, got %s", first.Paid)
	}
	if !first.Reserved.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Expected reserved 15000, got %s", first.Reserved)
	}
	if !first.Expenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected expenses 500, got %s", first.Expenses)
	}
	if !first.TotalIncurred.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Expected total incurred 20000, got %s", first.TotalIncurred)
	}

	second := valuations[1]
	want, _ := decimal.NewFromString("12000.50")
	if !second.Paid.Equal(want) {
		t.Errorf("Expected cent-exact paid 12000.50, got %s", second.Paid)
	}
	if !second.Expenses.IsZero() {
		t.Errorf("Expected missing expenses to be zero, got %s", second.Expenses)
	}
}

func TestParseDevelopments_EmptyAndNoise(t *testing.T) {
	if got := ParseDevelopments(""); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}

	noise := "Left voicemail for claimant\n[[Break]]\n,\n[[Break]]\nFile review complete"
	if got := ParseDevelopments(noise); len(got) != 0 {
		t.Errorf("Expected no valuations from noise entries, got %v", got)
	}
}

func TestParseDevelopments_MissingDate(t *testing.T) {
	valuations := ParseDevelopments("Valuation update\nPaid: $100\nTotal Incurred: $100")

	if len(valuations) != 1 {
		t.Fatalf("Expected 1 valuation, got %d", len(valuations))
	}
	if valuations[0].Date != "Unknown" {
		t.Errorf("Expected Unknown date, got %q", valuations[0].Date)
	}
}

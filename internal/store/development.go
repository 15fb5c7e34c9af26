package store

import (
	"regexp"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/shopspring/decimal"
)

// Valuation entries arrive as one rollup text blob with entries separated by
// a literal break marker.
const developmentBreak = "[[Break]]"

var (
	developmentDateRe     = regexp.MustCompile(`^(\w+\s+\d{1,2},\s+\d{4})`)
	developmentPaidRe     = regexp.MustCompile(`Paid:\s*\$?([\d,.]+)`)
	developmentReservedRe = regexp.MustCompile(`Reserved:\s*\$?([\d,.]+)`)
	developmentExpensesRe = regexp.MustCompile(`Expenses:\s*\$?([\d,.]+)`)
	developmentTotalRe    = regexp.MustCompile(`Total Incurred:\s*\$?([\d,.]+)`)
)

// ParseDevelopments extracts the valuation history from an activity rollup
// blob. Entries without a valuation signal are skipped; a missing date
// becomes "Unknown".
func ParseDevelopments(raw string) []model.Valuation {
	if raw == "" {
		return nil
	}

	var valuations []model.Valuation
	for _, entry := range strings.Split(raw, developmentBreak) {
		entry = strings.TrimSpace(strings.Trim(strings.TrimSpace(entry), ","))
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "Valuation") && !strings.Contains(entry, "Total Incurred:") {
			continue
		}

		date := "Unknown"
		if m := developmentDateRe.FindStringSubmatch(entry); m != nil {
			date = m[1]
		}

		paid, paidOK := matchAmount(developmentPaidRe, entry)
		reserved, reservedOK := matchAmount(developmentReservedRe, entry)
		expenses, _ := matchAmount(developmentExpensesRe, entry)
		total, _ := matchAmount(developmentTotalRe, entry)

		if !total.IsPositive() && !paidOK && !reservedOK {
			continue
		}

		valuations = append(valuations, model.Valuation{
			Date:          date,
			Paid:          paid,
			Reserved:      reserved,
			Expenses:      expenses,
			TotalIncurred: total,
		})
	}
	return valuations
}

func matchAmount(re *regexp.Regexp, entry string) (decimal.Decimal, bool) {
	m := re.FindStringSubmatch(entry)
	if m == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero, true
	}
	return d, true
}

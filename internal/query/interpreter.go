package query

import (
	"fmt"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// Interpret consumes a token sequence and produces a FilterSpecification.
//
// Client fragments concatenate in input order into the client matcher, which
// must be non-empty. All other modifiers are order-independent; when a
// modifier repeats, the last occurrence wins. An amount predicate needs both
// an operator and an amount: a dangling operator or a bare amount is dropped
// rather than failing the query, so partial queries still return best-effort
// narrowed results.
func Interpret(tokens []Token) (*model.FilterSpecification, error) {
	spec := &model.FilterSpecification{}

	var nameParts []string
	var pendingOp model.ComparisonOperator
	var haveOp bool
	var window model.TimeWindow

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenClientFragment:
			nameParts = append(nameParts, tok.Text)

		case TokenStatus:
			spec.Status = tok.Status

		case TokenAnyStatus:
			spec.Status = ""

		case TokenCategory:
			spec.Category = tok.Category

		case TokenOperator:
			// A second operator before any amount replaces the first.
			pendingOp = tok.Operator
			haveOp = true

		case TokenAmount:
			if haveOp {
				spec.Amount = &model.AmountPredicate{Operator: pendingOp, Threshold: tok.Amount}
				haveOp = false
			}
			// A bare amount without an operator resolves nothing; dropped.

		case TokenRelativeTime:
			window.PolicyYearsBack = tok.Years

		case TokenSinceYear:
			window.SinceYear = tok.Year
		}
	}

	spec.ClientMatcher = strings.TrimSpace(strings.Join(nameParts, " "))
	if spec.ClientMatcher == "" {
		return nil, fmt.Errorf("interpret query: %w", ErrEmptyClientMatcher)
	}

	if window.PolicyYearsBack > 0 || window.SinceYear > 0 {
		spec.Time = &window
	}

	return spec, nil
}

// Parse tokenizes and interprets raw query text in one step.
func Parse(raw string, vocab *Vocabulary) (*model.FilterSpecification, error) {
	tokens, err := Tokenize(raw, vocab)
	if err != nil {
		return nil, err
	}
	return Interpret(tokens)
}

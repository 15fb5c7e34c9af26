package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/shopspring/decimal"
)

// Tokenize-time and interpret-time failures.
var (
	// ErrUnparseableNumber is returned when a numeric-looking fragment
	// cannot be parsed as a valid amount.
	ErrUnparseableNumber = errors.New("unparseable number")

	// ErrEmptyClientMatcher is returned when a query contains no client
	// name fragments.
	ErrEmptyClientMatcher = errors.New("empty client matcher")
)

// TokenKind discriminates the token variants produced by Tokenize.
type TokenKind int

const (
	TokenClientFragment TokenKind = iota
	TokenStatus
	TokenAnyStatus // the word "all": clears any status filter
	TokenCategory
	TokenOperator
	TokenAmount
	TokenRelativeTime
	TokenSinceYear
)

// Token is one semantic unit of a query. Immutable once produced; the field
// matching Kind is the payload.
type Token struct {
	Kind     TokenKind
	Text     string // client fragment, original casing
	Status   model.ClaimStatus
	Category string
	Operator model.ComparisonOperator
	Amount   decimal.Decimal
	Years    int // relative time window
	Year     int // absolute policy-year floor
}

// Tokenize splits and normalizes raw query text into semantic tokens using a
// single linear scan with phrase lookahead. Words matching no vocabulary
// entry, operator, number, or time phrase become client-name fragments, so
// multi-word client names need no quoting. The only failure mode is a
// numeric-looking fragment that does not parse as an amount.
func Tokenize(raw string, vocab *Vocabulary) ([]Token, error) {
	// Comparison symbols are dropped; the word forms carry the meaning.
	r := strings.NewReplacer(">", " ", "<", " ", "=", " ")
	words := strings.Fields(r.Replace(raw))

	var tokens []Token
	i := 0
	for i < len(words) {
		if tok, n := matchTimePhrase(words[i:]); n > 0 {
			tokens = append(tokens, tok)
			i += n
			continue
		}

		if tok, n := matchPhrase(words[i:], vocab); n > 0 {
			tokens = append(tokens, tok)
			i += n
			continue
		}

		word := words[i]
		lower := strings.ToLower(word)

		if status, ok := vocab.Status(lower); ok {
			tokens = append(tokens, Token{Kind: TokenStatus, Status: status})
			i++
			continue
		}

		switch lower {
		case "all":
			tokens = append(tokens, Token{Kind: TokenAnyStatus})
			i++
			continue
		case "only":
			// Noise word, consumed without effect.
			i++
			continue
		}

		if looksNumeric(word) {
			amount, err := parseAmount(word)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: TokenAmount, Amount: amount})
			i++
			continue
		}

		tokens = append(tokens, Token{Kind: TokenClientFragment, Text: word})
		i++
	}

	return tokens, nil
}

// matchPhrase tries operator and category phrases at the head of words,
// longest first, and reports the number of words consumed (0 if none).
func matchPhrase(words []string, vocab *Vocabulary) (Token, int) {
	maxLen := vocab.MaxPhraseWords()
	if maxLen > len(words) {
		maxLen = len(words)
	}

	for n := maxLen; n >= 1; n-- {
		phrase := strings.ToLower(strings.Join(words[:n], " "))
		if op, ok := vocab.Operator(phrase); ok {
			return Token{Kind: TokenOperator, Operator: op}, n
		}
		if cat, ok := vocab.Category(phrase); ok {
			return Token{Kind: TokenCategory, Category: cat}, n
		}
	}

	return Token{}, 0
}

// matchTimePhrase recognizes "last <n> year(s)", "since <yyyy>",
// "[since|from] policy year <yyyy>" and "from <yyyy>" at the head of words.
func matchTimePhrase(words []string) (Token, int) {
	lower := make([]string, 0, 4)
	for i := 0; i < len(words) && i < 4; i++ {
		lower = append(lower, strings.ToLower(words[i]))
	}

	if len(lower) >= 3 && lower[0] == "last" {
		if years, err := strconv.Atoi(lower[1]); err == nil && years > 0 {
			if lower[2] == "year" || lower[2] == "years" {
				return Token{Kind: TokenRelativeTime, Years: years}, 3
			}
		}
	}

	if len(lower) >= 4 && (lower[0] == "since" || lower[0] == "from") &&
		lower[1] == "policy" && lower[2] == "year" {
		if year, ok := parsePolicyYear(lower[3]); ok {
			return Token{Kind: TokenSinceYear, Year: year}, 4
		}
	}

	if len(lower) >= 3 && lower[0] == "policy" && lower[1] == "year" {
		if year, ok := parsePolicyYear(lower[2]); ok {
			return Token{Kind: TokenSinceYear, Year: year}, 3
		}
	}

	if len(lower) >= 2 && (lower[0] == "since" || lower[0] == "from") {
		if year, ok := parsePolicyYear(lower[1]); ok {
			return Token{Kind: TokenSinceYear, Year: year}, 2
		}
	}

	return Token{}, 0
}

func parsePolicyYear(word string) (int, bool) {
	if len(word) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(word)
	if err != nil || year < 1900 || year > 2199 {
		return 0, false
	}
	return year, true
}

// looksNumeric reports whether a word is an amount candidate: an optional
// currency symbol followed by a digit.
func looksNumeric(word string) bool {
	w := strings.TrimPrefix(word, "$")
	return len(w) > 0 && w[0] >= '0' && w[0] <= '9'
}

// parseAmount parses a numeric fragment into a decimal, accepting an
// optional currency symbol and thousands separators.
func parseAmount(word string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(word, "$"), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", word, ErrUnparseableNumber)
	}
	return amount, nil
}

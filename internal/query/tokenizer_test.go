package query

import (
	"errors"
	"testing"

	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/shopspring/decimal"
)

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func testVocab(t *testing.T) *Vocabulary {
	t.Helper()
	vocab, err := NewVocabulary(model.DefaultConfig().Vocabulary)
	if err != nil {
		t.Fatalf("Expected no error building vocabulary, got %v", err)
	}
	return vocab
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_BasicModifiers(t *testing.T) {
	vocab := testVocab(t)

	tokens, err := Tokenize("Jasmin open greater than 25000", vocab)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []TokenKind{TokenClientFragment, TokenStatus, TokenOperator, TokenAmount}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Token %d: expected kind %v, got %v", i, want[i], got[i])
		}
	}

	if tokens[0].Text != "Jasmin" {
		t.Errorf("Expected client fragment 'Jasmin', got %q", tokens[0].Text)
	}
	if tokens[1].Status != model.StatusOpen {
		t.Errorf("Expected status Open, got %q", tokens[1].Status)
	}
	if tokens[2].Operator != model.OpGreaterThan {
		t.Errorf("Expected greater_than operator, got %q", tokens[2].Operator)
	}
	if !tokens[3].Amount.Equal(decimalFromInt(25000)) {
		t.Errorf("Expected amount 25000, got %s", tokens[3].Amount)
	}
}

func TestTokenize_MultiWordClientName(t *testing.T) {
	vocab := testVocab(t)

	tokens, err := Tokenize("Ocean Partners closed property", vocab)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var fragments []string
	for _, tok := range tokens {
		if tok.Kind == TokenClientFragment {
			fragments = append(fragments, tok.Text)
		}
	}
	if len(fragments) != 2 || fragments[0] != "Ocean" || fragments[1] != "Partners" {
		t.Errorf("Expected fragments [Ocean Partners], got %v", fragments)
	}
}

func TestTokenize_GreedyPhraseBeforeSingleWord(t *testing.T) {
	vocab := testVocab(t)

	// "greater than" must match as one operator, not leave "than" as a
	// client fragment. "over" matches as a single word.
	tokens, err := Tokenize("Acme greater than 100 over 200", vocab)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ops := 0
	for _, tok := range tokens {
		if tok.Kind == TokenOperator {
			ops++
		}
		if tok.Kind == TokenClientFragment && tok.Text != "Acme" {
			t.Errorf("Unexpected client fragment %q", tok.Text)
		}
	}
	if ops != 2 {
		t.Errorf("Expected 2 operator tokens, got %d", ops)
	}
}

func TestTokenize_MultiWordCategory(t *testing.T) {
	vocab := testVocab(t)

	tokens, err := Tokenize("Jasmin general liability", vocab)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	found := false
	for _, tok := range tokens {
		if tok.Kind == TokenCategory {
			found = true
			if tok.Category != "General Liability" {
				t.Errorf("Expected canonical category 'General Liability', got %q", tok.Category)
			}
		}
	}
	if !found {
		t.Error("Expected a category token for 'general liability'")
	}
}

func TestTokenize_AmountFormats(t *testing.T) {
	vocab := testVocab(t)

	cases := []struct {
		raw  string
		want string
	}{
		{"Jasmin over 25000", "25000"},
		{"Jasmin over 25,000", "25000"},
		{"Jasmin over $25,000", "25000"},
		{"Jasmin over $1,234,567.89", "1234567.89"},
	}

	for _, tc := range cases {
		tokens, err := Tokenize(tc.raw, vocab)
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", tc.raw, err)
		}
		last := tokens[len(tokens)-1]
		if last.Kind != TokenAmount {
			t.Fatalf("%q: expected trailing amount token, got kind %v", tc.raw, last.Kind)
		}
		if last.Amount.String() != tc.want {
			t.Errorf("%q: expected amount %s, got %s", tc.raw, tc.want, last.Amount)
		}
	}
}

func TestTokenize_UnparseableNumber(t *testing.T) {
	vocab := testVocab(t)

	_, err := Tokenize("Jasmin over 25.0.0", vocab)
	if err == nil {
		t.Fatal("Expected unparseable number error, got nil")
	}
	if !errors.Is(err, ErrUnparseableNumber) {
		t.Errorf("Expected ErrUnparseableNumber, got %v", err)
	}
}

func TestTokenize_RelativeTime(t *testing.T) {
	vocab := testVocab(t)

	tokens, err := Tokenize("Jasmin last 5 years", vocab)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	found := false
	for _, tok := range tokens {
		if tok.Kind == TokenRelativeTime {
			found = true
			if tok.Years != 5 {
				t.Errorf("Expected 5 years, got %d", tok.Years)
			}
		}
		if tok.Kind == TokenClientFragment && tok.Text != "Jasmin" {
			t.Errorf("Time phrase leaked into client fragments: %q", tok.Text)
		}
	}
	if !found {
		t.Error("Expected a relative-time token for 'last 5 years'")
	}
}

func TestTokenize_SinceYearPhrases(t *testing.T) {
	vocab := testVocab(t)

	cases := []string{
		"Jasmin since 2020",
		"Jasmin since policy year 2020",
		"Jasmin policy year 2020",
		"Jasmin from policy year 2020",
	}

	for _, raw := range cases {
		tokens, err := Tokenize(raw, vocab)
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", raw, err)
		}
		found := false
		for _, tok := range tokens {
			if tok.Kind == TokenSinceYear {
				found = true
				if tok.Year != 2020 {
					t.Errorf("%q: expected year 2020, got %d", raw, tok.Year)
				}
			}
		}
		if !found {
			t.Errorf("%q: expected a since-year token", raw)
		}
	}
}

func TestTokenize_UnrecognizedWordsBecomeClientFragments(t *testing.T) {
	vocab := testVocab(t)

	tokens, err := Tokenize("The Grand Jasmin Hotel Group", vocab)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, tok := range tokens {
		if tok.Kind != TokenClientFragment {
			t.Errorf("Expected only client fragments, got kind %v", tok.Kind)
		}
	}
	if len(tokens) != 5 {
		t.Errorf("Expected 5 fragments, got %d", len(tokens))
	}
}

func TestTokenize_ComparisonSymbolsDropped(t *testing.T) {
	vocab := testVocab(t)

	tokens, err := Tokenize("Jasmin open >25000", vocab)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The symbol is stripped; the number survives as a bare amount.
	last := tokens[len(tokens)-1]
	if last.Kind != TokenAmount {
		t.Errorf("Expected amount token after symbol strip, got kind %v", last.Kind)
	}
}

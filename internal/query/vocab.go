package query

import (
	"fmt"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

// Vocabulary is the read-only keyword table used by the tokenizer. It is
// built once at startup and safe for unsynchronized concurrent reads.
type Vocabulary struct {
	statuses   map[string]model.ClaimStatus
	categories map[string]string
	operators  map[string]model.ComparisonOperator

	// Longest phrase length, in words, across categories and operators.
	maxPhraseWords int
}

// NewVocabulary builds a vocabulary from configuration. Multi-word phrases
// are normalized to single-space separators and matched greedily before
// shorter ones.
func NewVocabulary(cfg model.VocabularyConfig) (*Vocabulary, error) {
	v := &Vocabulary{
		statuses:       make(map[string]model.ClaimStatus),
		categories:     make(map[string]string),
		operators:      make(map[string]model.ComparisonOperator),
		maxPhraseWords: 1,
	}

	for word, status := range cfg.Statuses {
		switch model.ClaimStatus(status) {
		case model.StatusOpen, model.StatusClosed:
			v.statuses[normalizePhrase(word)] = model.ClaimStatus(status)
		default:
			return nil, fmt.Errorf("vocabulary: unknown status %q for word %q", status, word)
		}
	}

	for phrase, canonical := range cfg.Categories {
		p := normalizePhrase(phrase)
		v.categories[p] = canonical
		v.trackPhraseLen(p)
	}

	for phrase, op := range cfg.Operators {
		switch model.ComparisonOperator(op) {
		case model.OpGreaterThan, model.OpLessThan, model.OpEqualTo:
			p := normalizePhrase(phrase)
			v.operators[p] = model.ComparisonOperator(op)
			v.trackPhraseLen(p)
		default:
			return nil, fmt.Errorf("vocabulary: unknown operator %q for phrase %q", op, phrase)
		}
	}

	return v, nil
}

func (v *Vocabulary) trackPhraseLen(phrase string) {
	if n := len(strings.Fields(phrase)); n > v.maxPhraseWords {
		v.maxPhraseWords = n
	}
}

// Status returns the canonical status for a lowercased word.
func (v *Vocabulary) Status(word string) (model.ClaimStatus, bool) {
	s, ok := v.statuses[word]
	return s, ok
}

// Category returns the canonical category for a lowercased phrase.
func (v *Vocabulary) Category(phrase string) (string, bool) {
	c, ok := v.categories[phrase]
	return c, ok
}

// Operator returns the comparison operator for a lowercased phrase.
func (v *Vocabulary) Operator(phrase string) (model.ComparisonOperator, bool) {
	op, ok := v.operators[phrase]
	return op, ok
}

// MaxPhraseWords returns the longest phrase length the tokenizer must look
// ahead for.
func (v *Vocabulary) MaxPhraseWords() int {
	return v.maxPhraseWords
}

func normalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

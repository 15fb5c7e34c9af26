package store

import (
	"strings"
	"testing"
)

func TestClientNameFormula_CoversAllNameFields(t *testing.T) {
	formula := clientNameFormula("Jasmin")

	for _, field := range []string{"Client Name", "Corporate Name", "DBA (from Location)", "Companies"} {
		if !strings.Contains(formula, "{"+field+"}") {
			t.Errorf("Expected formula to reference {%s}, got %s", field, formula)
		}
	}
	if !strings.HasPrefix(formula, "OR(") {
		t.Errorf("Expected OR over name fields, got %s", formula)
	}
	if !strings.Contains(formula, `"jasmin"`) {
		t.Errorf("Expected lowercased needle, got %s", formula)
	}
}

func TestClientNameFormula_EscapesQuotes(t *testing.T) {
	formula := clientNameFormula(`Bob's "Inn"`)

	if !strings.Contains(formula, `""inn""`) {
		t.Errorf("Expected doubled quotes around embedded quotes, got %s", formula)
	}
}

func TestSalesSearchFormula(t *testing.T) {
	formula := salesSearchFormula("Ocean")

	for _, field := range []string{"Opportunity Name", "Opportunity Corporate Name", "DBA"} {
		if !strings.Contains(formula, "{"+field+"}") {
			t.Errorf("Expected formula to reference {%s}, got %s", field, formula)
		}
	}
}

func TestOpenTasksFormula(t *testing.T) {
	if got := openTasksFormula(); got != `NOT({Task Status} = "Done")` {
		t.Errorf("Unexpected open tasks formula: %s", got)
	}
}

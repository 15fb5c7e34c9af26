package store

import (
	"fmt"
	"strings"
)

// escapeFormulaString doubles quotes so user text cannot break out of a
// formula string literal.
func escapeFormulaString(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// clientNameFormula builds a case-insensitive substring match over every
// field a client name can appear in. The store-side formula only narrows
// the result set; the in-process evaluator is authoritative.
func clientNameFormula(name string) string {
	needle := strings.ToLower(escapeFormulaString(name))
	fields := []string{
		"Client Name",
		"Corporate Name",
		"DBA (from Location)",
		"Companies",
	}

	clauses := make([]string, len(fields))
	for i, field := range fields {
		clauses[i] = fmt.Sprintf(`FIND("%s", LOWER(ARRAYJOIN({%s})))`, needle, field)
	}
	return "OR(" + strings.Join(clauses, ", ") + ")"
}

// salesSearchFormula matches sales opportunities by name fragments.
func salesSearchFormula(term string) string {
	needle := strings.ToLower(escapeFormulaString(term))
	fields := []string{
		"Opportunity Name",
		"Opportunity Corporate Name",
		"DBA",
	}

	clauses := make([]string, len(fields))
	for i, field := range fields {
		clauses[i] = fmt.Sprintf(`FIND("%s", LOWER({%s} & ""))`, needle, field)
	}
	return "OR(" + strings.Join(clauses, ", ") + ")"
}

// openTasksFormula selects every task that is not done.
func openTasksFormula() string {
	return `NOT({Task Status} = "Done")`
}

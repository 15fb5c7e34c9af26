package bot

import (
	"testing"
	"time"
)

func TestParseAddArgs(t *testing.T) {
	company, description, priority, ok := parseAddArgs("Jasmin Hotels | Renew umbrella policy | high")
	if !ok {
		t.Fatal("Expected valid add arguments to parse")
	}
	if company != "Jasmin Hotels" || description != "Renew umbrella policy" {
		t.Errorf("Unexpected parse: %q, %q", company, description)
	}
	if priority != "High" {
		t.Errorf("Expected canonical High priority, got %q", priority)
	}
}

func TestParseAddArgs_DefaultPriority(t *testing.T) {
	_, _, priority, ok := parseAddArgs("Jasmin | Call adjuster")
	if !ok {
		t.Fatal("Expected two-part arguments to parse")
	}
	if priority != "Medium" {
		t.Errorf("Expected Medium default, got %q", priority)
	}

	_, _, priority, _ = parseAddArgs("Jasmin | Call adjuster | urgent")
	if priority != "Medium" {
		t.Errorf("Expected unknown priority to fall back to Medium, got %q", priority)
	}
}

func TestParseAddArgs_Invalid(t *testing.T) {
	for _, args := range []string{"", "just a client", "| task only", "client |"} {
		if _, _, _, ok := parseAddArgs(args); ok {
			t.Errorf("Expected %q to be rejected", args)
		}
	}
}

func TestAtCommand(t *testing.T) {
	command, args, ok := atCommand("@consulting Jasmin open greater than 25000")
	if !ok {
		t.Fatal("Expected @consulting message to be recognized")
	}
	if command != "consulting" || args != "Jasmin open greater than 25000" {
		t.Errorf("Unexpected parse: %q, %q", command, args)
	}

	if _, _, ok := atCommand("Jasmin open"); ok {
		t.Error("Expected plain text not to be treated as a command")
	}
	if _, _, ok := atCommand("@unknown thing"); ok {
		t.Error("Expected unknown @command to be rejected")
	}
}

func TestReportFilename(t *testing.T) {
	generatedAt := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	if got := reportFilename("Ocean Partners", generatedAt); got != "Claims_Report_Ocean_Partners_20260830.pdf" {
		t.Errorf("Unexpected filename: %q", got)
	}
	if got := reportFilename("", generatedAt); got != "Claims_Report_Client_20260830.pdf" {
		t.Errorf("Unexpected fallback filename: %q", got)
	}
}

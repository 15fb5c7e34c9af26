package report

import (
	"fmt"
	"strings"

	"github.com/hotelrisk/riskadvisor/internal/model"
)

const divider = "───────────────────────────────"

// RenderChat renders a report document as Telegram-flavored Markdown text.
func RenderChat(doc *model.ReportDocument) string {
	var b strings.Builder

	for _, section := range doc.Sections {
		switch section.Kind {
		case model.SectionNarrative:
			if section.Narrative.Heading != "" {
				fmt.Fprintf(&b, "*%s*\n", section.Narrative.Heading)
			}
			b.WriteString(section.Narrative.Text)
			b.WriteString("\n\n")

		case model.SectionTotals:
			tot := section.Totals
			fmt.Fprintf(&b, "📊 *Summary*\n")
			fmt.Fprintf(&b, "Total Claims: %d (Open: %d, Closed: %d)\n", tot.TotalClaims, tot.OpenCount, tot.ClosedCount)
			fmt.Fprintf(&b, "Total Incurred: %s\n", model.FormatMoney(tot.TotalIncurred))
			fmt.Fprintf(&b, "Total Paid: %s  |  Total Reserved: %s\n", model.FormatMoney(tot.TotalPaid), model.FormatMoney(tot.TotalReserved))
			if tot.AttorneyCount > 0 {
				fmt.Fprintf(&b, "⚖️ Attorney Representation: %d claim(s)\n", tot.AttorneyCount)
			}
			b.WriteString("\n")

		case model.SectionTable:
			table := section.Table
			fmt.Fprintf(&b, "*%s*\n", table.Title)
			if len(table.Rows) == 0 {
				b.WriteString("_none_\n\n")
				continue
			}
			for _, row := range table.Rows {
				b.WriteString("• ")
				b.WriteString(strings.Join(row, "  |  "))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatClaimCard formats one claim record as a chat detail card, used by
// /consulting result listings.
func FormatClaimCard(rec model.ClaimRecord) string {
	var lines []string

	lines = append(lines, divider)
	statusIcon := "🔴"
	if rec.Status == model.StatusClosed {
		statusIcon = "✅"
	}
	lines = append(lines, fmt.Sprintf("%s *%s*  |  %s  |  %s", statusIcon, orNA(rec.ClaimNumber), rec.Status, orNA(rec.Category)))
	lines = append(lines, fmt.Sprintf("💰 Incurred: *%s*", model.FormatMoney(rec.Amount)))

	if rec.IncidentDate != "" {
		lines = append(lines, "Date of Loss: "+rec.IncidentDate)
	}
	if rec.Property != "" {
		lines = append(lines, "Property: "+rec.Property)
	}
	if rec.Corporate != "" {
		lines = append(lines, "Corporate: "+rec.Corporate)
	}
	if rec.Claimant != "" {
		lines = append(lines, "Claimant: "+rec.Claimant)
	}
	if rec.Cause != "" {
		lines = append(lines, "Cause: "+rec.Cause)
	}
	if rec.Location != "" {
		lines = append(lines, "Location: "+rec.Location)
	}
	if rec.AttorneyRep {
		lines = append(lines, "⚖️ *Attorney Representation:* Yes")
	}
	if rec.Carrier != "" {
		lines = append(lines, "Carrier: "+rec.Carrier)
	}
	if rec.PolicyNumber != "" {
		lines = append(lines, "Policy #: "+rec.PolicyNumber)
	}
	if rec.Description != "" {
		lines = append(lines, "_"+truncate(rec.Description, 200)+"_")
	}

	if dev := formatDevelopments(rec.Developments); dev != "" {
		lines = append(lines, dev)
	}

	return strings.Join(lines, "\n")
}

// formatDevelopments renders the claims development progression.
func formatDevelopments(valuations []model.Valuation) string {
	if len(valuations) == 0 {
		return ""
	}

	lines := []string{"📈 *Claims Development*"}
	for _, v := range valuations {
		var parts []string
		if v.Paid.IsPositive() {
			parts = append(parts, "Paid: "+model.FormatMoney(v.Paid))
		}
		if v.Reserved.IsPositive() {
			parts = append(parts, "Rsv: "+model.FormatMoney(v.Reserved))
		}
		if v.Expenses.IsPositive() {
			parts = append(parts, "Exp: "+model.FormatMoney(v.Expenses))
		}

		detail := ""
		if len(parts) > 0 {
			detail = " (" + strings.Join(parts, ", ") + ")"
		}
		lines = append(lines, fmt.Sprintf("• %s: *%s*%s", v.Date, model.FormatMoney(v.TotalIncurred), detail))
	}
	return strings.Join(lines, "\n")
}

// FormatSalesCard formats one sales opportunity as a chat card, used by
// /sales result listings.
func FormatSalesCard(opp model.Opportunity) string {
	var lines []string

	lines = append(lines, divider)
	lines = append(lines, fmt.Sprintf("🏢 *%s*", orNA(opp.Label())))
	if opp.DBA != "" {
		lines = append(lines, "DBA: "+opp.DBA)
	}
	lines = append(lines, "Status: "+orNA(opp.Status))
	if opp.MarketStatus != "" {
		lines = append(lines, "Market Status: "+opp.MarketStatus)
	}
	if opp.EffectiveDate != "" {
		lines = append(lines, "Effective Date: "+opp.EffectiveDate)
	}
	if opp.NewRenewal != "" {
		lines = append(lines, "New/Renewal: "+opp.NewRenewal)
	}
	if !opp.Revenue.IsZero() {
		lines = append(lines, "Revenue: "+model.FormatMoney(opp.Revenue))
	}
	if !opp.ExpiringRevenue.IsZero() {
		lines = append(lines, "Expiring Revenue: "+model.FormatMoney(opp.ExpiringRevenue))
	}

	return strings.Join(lines, "\n")
}

// FormatTaskList formats the open task list for /update.
func FormatTaskList(tasks []model.Task) string {
	if len(tasks) == 0 {
		return "No open tasks found."
	}

	lines := []string{"📋 *Open Tasks*", ""}
	for _, task := range tasks {
		statusIcon := map[string]string{
			model.TaskTodo:       "🔴",
			model.TaskInProgress: "🟡",
		}[task.Status]
		if statusIcon == "" {
			statusIcon = "⚪"
		}
		priorityIcon := map[string]string{
			"High":   "🔥",
			"Medium": "⚡",
			"Low":    "💤",
		}[task.Priority]

		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s %s *%s*", statusIcon, priorityIcon, task.Name)))
		if task.DueDate != "" {
			lines = append(lines, "   Due: "+task.DueDate)
		}
		if task.AssignedTo != "" {
			lines = append(lines, "   Assigned: "+task.AssignedTo)
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// FormatTaskSummary formats the progress summary for /status.
func FormatTaskSummary(sum model.TaskSummary) string {
	return fmt.Sprintf(
		"📊 *Task Progress*\n"+
			"━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
			"Total Tasks: %d\n"+
			"✅ Done: %d\n"+
			"🟡 In Progress: %d\n"+
			"🔴 Todo: %d",
		sum.Total, sum.Done, sum.InProgress, sum.Todo)
}

// SplitMessage splits text into chunks no longer than limit, breaking on
// line boundaries where possible. Chat transports cap message length.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-2] + ".."
}

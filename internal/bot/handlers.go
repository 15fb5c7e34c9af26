package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/hotelrisk/riskadvisor/internal/report"
	"go.uber.org/zap"
)

const welcomeText = "🏨 *Hotel Risk Advisor Bot*\n" +
	"━━━━━━━━━━━━━━━━━━━━━━━━━━━\n" +
	"Welcome! I can help you query the hotel insurance databases.\n\n" +
	"*Available Commands:*\n" +
	"• /consulting `query` — Search Claims\n" +
	"• /report `query` — Executive PDF Report\n" +
	"• /sales `query` — Search Sales System\n" +
	"• /update — Get task list\n" +
	"• /status — View progress\n" +
	"• /add `Client | Task | Priority` — Add task\n" +
	"• /help — Show this message\n\n" +
	"*Consulting Query Examples:*\n" +
	"• `/consulting Jasmin` — All claims\n" +
	"• `/consulting Jasmin open` — Open claims\n" +
	"• `/consulting Jasmin open liability greater than 25000`\n" +
	"• `/consulting Jasmin last 5 years`\n" +
	"• `/consulting Jasmin closed property since 2020`\n\n" +
	"*PDF Report:*\n" +
	"• `/report Ocean Partners` — Full PDF report\n" +
	"• `/report Jasmin open liability last 5 years`"

// handleMessage routes one incoming message. Commands arrive both as
// /command and as @command text from clients that swallow the slash.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())

	if command == "" {
		text := strings.TrimSpace(msg.Text)
		if at, rest, ok := atCommand(text); ok {
			command, args = at, rest
		} else if containsHelpWord(text) {
			command = "help"
		} else {
			b.send(msg.Chat.ID, "I didn't understand that. Use /help to see available commands.")
			return
		}
	}

	log := b.logger.With(zap.String("command", command), zap.Int64("chat_id", msg.Chat.ID))
	log.Info("handling command")

	var err error
	switch command {
	case "start", "help":
		b.send(msg.Chat.ID, welcomeText)
	case "consulting":
		err = b.handleConsulting(ctx, msg.Chat.ID, args)
	case "report":
		err = b.handleReport(ctx, msg.Chat.ID, args)
	case "sales":
		err = b.handleSales(ctx, msg.Chat.ID, args)
	case "update":
		err = b.handleUpdate(ctx, msg.Chat.ID)
	case "status":
		err = b.handleStatus(ctx, msg.Chat.ID)
	case "add":
		err = b.handleAdd(ctx, msg.Chat.ID, args)
	default:
		b.send(msg.Chat.ID, "Unknown command. Use /help to see available commands.")
	}

	if err != nil {
		log.Error("command failed", zap.Error(err))
		b.send(msg.Chat.ID, "⚠️ An error occurred. Please try again.")
	}
}

func (b *Bot) handleConsulting(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		b.send(chatID, "🔍 *Consulting System Query*\n\n"+
			"Usage: `/consulting ClientName [filters]`\n\n"+
			"Examples:\n"+
			"• `/consulting Jasmin open`\n"+
			"• `/consulting Jasmin open liability greater than 25000`\n"+
			"• `/consulting Jasmin last 5 years`\n\n"+
			"Searches across client, corporate, DBA, and company names.")
		return nil
	}

	b.send(chatID, "⏳ Searching Consulting System...")

	result, err := b.pipeline.RunQuery(ctx, args)
	if err != nil {
		b.send(chatID, "Could not interpret that query: "+err.Error())
		return nil
	}

	if len(result.Matches) == 0 {
		b.send(chatID, fmt.Sprintf("No claims found matching your criteria.\nClient: *%s* | %s",
			result.Spec.ClientMatcher, describeOrNone(result.Spec)))
		return nil
	}

	header := fmt.Sprintf("🏨 *Consulting System Results*\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"Found *%d* claim(s)\n"+
		"Total Incurred: *%s*\n"+
		"Client: *%s* | %s",
		result.Aggregate.TotalCount,
		model.FormatMoney(result.Aggregate.TotalAmount),
		result.Spec.ClientMatcher,
		describeOrNone(result.Spec))
	b.send(chatID, header)

	limit := b.cfg.MaxChatResults
	if limit <= 0 {
		limit = 10
	}
	for i, rec := range result.Matches {
		if i >= limit {
			break
		}
		b.send(chatID, report.FormatClaimCard(rec))
	}

	if len(result.Matches) > limit {
		b.send(chatID, fmt.Sprintf("_Showing %d of %d results. Refine your search or use /report for the full PDF._",
			limit, len(result.Matches)))
	}
	return nil
}

func (b *Bot) handleReport(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		b.send(chatID, "📄 *Executive PDF Report*\n\n"+
			"Usage: `/report ClientName [filters]`\n\n"+
			"Examples:\n"+
			"• `/report Ocean Partners`\n"+
			"• `/report Jasmin open liability last 5 years`")
		return nil
	}

	b.send(chatID, "⏳ Generating executive PDF report...")

	doc, err := b.pipeline.BuildReport(ctx, args)
	if err != nil {
		b.send(chatID, "Could not interpret that query: "+err.Error())
		return nil
	}

	path := filepath.Join(b.outDir, reportFilename(doc.ClientLabel, doc.GeneratedAt))
	if err := report.RenderPDF(doc, path); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	defer os.Remove(path)

	totals := findTotals(doc)
	caption := fmt.Sprintf("📄 Executive Claims Report — %s\n%d claims | Total Incurred: %s",
		doc.ClientLabel, totals.TotalClaims, model.FormatMoney(totals.TotalIncurred))

	if err := b.sendDocument(chatID, path, caption); err != nil {
		return fmt.Errorf("send pdf: %w", err)
	}
	return nil
}

func (b *Bot) handleSales(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		b.send(chatID, "🔍 *Sales System Query*\n\n"+
			"Usage: `/sales search term`\n\n"+
			"Examples:\n"+
			"• `/sales Marriott`\n"+
			"• `/sales Premier Resorts`")
		return nil
	}

	b.send(chatID, fmt.Sprintf("⏳ Searching Sales System for: *%s*...", args))

	opportunities, err := b.store.SearchSales(ctx, args)
	if err != nil {
		return err
	}
	if len(opportunities) == 0 {
		b.send(chatID, "No results found for: "+args)
		return nil
	}

	b.send(chatID, fmt.Sprintf("🏢 *Sales System Results*\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"Found *%d* result(s) for: *%s*", len(opportunities), args))

	limit := b.cfg.MaxChatResults
	if limit <= 0 {
		limit = 10
	}
	for i, opp := range opportunities {
		if i >= limit {
			break
		}
		b.send(chatID, report.FormatSalesCard(opp))
	}
	if len(opportunities) > limit {
		b.send(chatID, fmt.Sprintf("_Showing %d of %d results._", limit, len(opportunities)))
	}
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, chatID int64) error {
	b.send(chatID, "⏳ Fetching task list from Sales System...")

	tasks, err := b.store.ListOpenTasks(ctx)
	if err != nil {
		return err
	}
	b.send(chatID, report.FormatTaskList(tasks))
	return nil
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64) error {
	b.send(chatID, "⏳ Fetching status from Sales System...")

	summary, err := b.store.TaskSummary(ctx)
	if err != nil {
		return err
	}
	b.send(chatID, report.FormatTaskSummary(summary))
	return nil
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, args string) error {
	company, description, priority, ok := parseAddArgs(args)
	if !ok {
		b.send(chatID, "Usage: `/add Client Name | Task Description | Priority`\nPriority: High, Medium, or Low")
		return nil
	}

	b.send(chatID, fmt.Sprintf("⏳ Adding task for %s...", company))

	if err := b.store.AddTask(ctx, company, description, priority); err != nil {
		return err
	}
	b.send(chatID, fmt.Sprintf("✅ Task added successfully!\n📌 %s\nPriority: %s", description, priority))
	return nil
}

// parseAddArgs parses "Client | Task | Priority". Priority defaults to
// Medium and is canonicalized case-insensitively.
func parseAddArgs(args string) (company, description, priority string, ok bool) {
	if args == "" {
		return "", "", "", false
	}

	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}

	priority = "Medium"
	if len(parts) > 2 {
		switch strings.ToLower(parts[2]) {
		case "high":
			priority = "High"
		case "low":
			priority = "Low"
		}
	}
	return parts[0], parts[1], priority, true
}

// atCommand recognizes "@consulting Jasmin open" style messages.
func atCommand(text string) (command, args string, ok bool) {
	if !strings.HasPrefix(text, "@") {
		return "", "", false
	}

	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return "", "", false
	}

	switch strings.ToLower(fields[0]) {
	case "consulting", "report", "sales", "update", "status", "add", "help", "start":
		return strings.ToLower(fields[0]), strings.Join(fields[1:], " "), true
	}
	return "", "", false
}

func containsHelpWord(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range []string{"help", "commands", "what can you do"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func describeOrNone(spec *model.FilterSpecification) string {
	if !spec.HasFilters() {
		return "no filters"
	}
	return spec.Describe()
}

func findTotals(doc *model.ReportDocument) *model.Totals {
	for _, section := range doc.Sections {
		if section.Kind == model.SectionTotals {
			return section.Totals
		}
	}
	return &model.Totals{}
}

func reportFilename(clientLabel string, generatedAt time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(clientLabel), " ", "_")
	if name == "" {
		name = "Client"
	}
	return fmt.Sprintf("Claims_Report_%s_%s.pdf", name, generatedAt.Format("20060102"))
}

func splitForTransport(text string, limit int) []string {
	if limit <= 0 {
		limit = 4000
	}
	return report.SplitMessage(text, limit)
}

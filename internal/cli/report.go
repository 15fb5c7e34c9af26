package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hotelrisk/riskadvisor/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportPDF     string
	reportMD      string
	reportNoFoot  bool
	reportTimeout time.Duration
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <text>...",
	Short: "Generate an executive claims report as PDF or Markdown",
	Long: `Report runs a free-text claims query and assembles the executive
report document: header narrative, totals, breakdowns by status, category
and policy year, and the claim detail table.

Example:
  riskadvisor report Jasmin open liability last 5 years
  riskadvisor report "Ocean Partners" --pdf report.pdf
  riskadvisor report Jasmin --md report.md --no-footer`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportPDF, "pdf", "", "output PDF path")
	reportCmd.Flags().StringVar(&reportMD, "md", "report.md", "output Markdown path")
	reportCmd.Flags().BoolVar(&reportNoFoot, "no-footer", false, "disable footer in Markdown reports")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 2*time.Minute, "overall report timeout")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reportNoFoot {
		cfg.Output.IncludeFooter = false
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, _, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	doc, err := p.BuildReport(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	if reportMD != "" {
		if err := report.WriteMarkdown(doc, reportMD, cfg.Output.IncludeFooter); err != nil {
			return fmt.Errorf("write Markdown: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown report to %s\n", reportMD)
		}
	}

	if reportPDF != "" {
		if err := report.RenderPDF(doc, reportPDF); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote PDF report to %s\n", reportPDF)
		}
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hotelrisk/riskadvisor/internal/report"
	"github.com/spf13/cobra"
)

var (
	queryJSON    string
	queryTimeout time.Duration
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <text>...",
	Short: "Interpret a free-text claims query and print the results",
	Long: `Query interprets free text against the Consulting system and prints
the matching claims with aggregate figures.

Example:
  riskadvisor query Jasmin open greater than 25000
  riskadvisor query "Ocean Partners" closed property last 5 years
  riskadvisor query Jasmin since 2020 --json matches.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryJSON, "json", "", "also write matched records as JSON to this path")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 2*time.Minute, "overall query timeout")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	raw := strings.Join(args, " ")
	result, err := p.RunQuery(ctx, raw)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	doc := report.Assemble(result.Spec.ClientMatcher, result.Spec, result.Aggregate,
		result.Matches, result.RequestID, time.Now().UTC())
	fmt.Println(report.RenderChat(doc))

	if queryJSON != "" {
		data, err := json.MarshalIndent(result.Matches, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal matches: %w", err)
		}
		if err := os.WriteFile(queryJSON, data, 0644); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %d matches to %s\n", len(result.Matches), queryJSON)
		}
	}
	return nil
}

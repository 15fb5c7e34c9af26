package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hotelrisk/riskadvisor/internal/pipeline"
	"github.com/hotelrisk/riskadvisor/internal/report"
	"github.com/hotelrisk/riskadvisor/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
	batchPDF         bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run multiple claims queries from a file in parallel",
	Long: `Batch reads queries from a file (one per line, # comments allowed)
and generates a report for each, processing queries concurrently.

Example:
  riskadvisor batch queries.txt
  riskadvisor batch queries.txt --concurrency 4 --output-dir ./reports --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchPDF, "pdf", false, "write PDF reports in addition to Markdown")
}

// reportJob renders the report for one query line.
type reportJob struct {
	pipeline  *pipeline.Pipeline
	raw       string
	outputDir string
	footer    bool
	pdf       bool
}

// reportResult implements worker.Result.
type reportResult struct {
	raw    string
	client string
	err    error
}

func (r *reportResult) Err() error {
	return r.err
}

func (j *reportJob) Run(ctx context.Context) worker.Result {
	doc, err := j.pipeline.BuildReport(ctx, j.raw)
	if err != nil {
		return &reportResult{raw: j.raw, err: err}
	}

	slug := querySlug(doc.ClientLabel)
	if err := report.WriteMarkdown(doc, filepath.Join(j.outputDir, slug+".md"), j.footer); err != nil {
		return &reportResult{raw: j.raw, err: err}
	}
	if j.pdf {
		if err := report.RenderPDF(doc, filepath.Join(j.outputDir, slug+".pdf")); err != nil {
			return &reportResult{raw: j.raw, err: err}
		}
	}
	return &reportResult{raw: j.raw, client: doc.ClientLabel}
}

func runBatch(cmd *cobra.Command, args []string) error {
	_, cancel := context.WithTimeout(context.Background(), batchTimeout)
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

	queries, err := readQueryLines(args[0])
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries found in %s", args[0])
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processing %d queries with %d workers...\n", len(queries), batchConcurrency)

	pool := worker.NewPool(batchConcurrency)
	pool.Start()
	for _, raw := range queries {
		pool.Submit(&reportJob{
			pipeline:  p,
			raw:       raw,
			outputDir: batchOutputDir,
			footer:    cfg.Output.IncludeFooter,
			pdf:       batchPDF,
		})
	}
	results := pool.Wait()

	successCount := 0
	failureCount := 0
	for _, res := range results {
		r := res.(*reportResult)
		if r.err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.raw, r.err)
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s\n", r.client)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d succeeded, %d failed, output in %s\n",
		successCount, failureCount, batchOutputDir)
	if failureCount > 0 {
		return fmt.Errorf("%d of %d queries failed", failureCount, len(results))
	}
	return nil
}

// readQueryLines loads queries from a file, one per line. Blank lines and
// # comments are skipped.
func readQueryLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query file: %w", err)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}
	return queries, nil
}

// querySlug sanitizes a client label for use in a filename.
func querySlug(label string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '/', r == '\\', r == ':':
			return '-'
		default:
			return -1
		}
	}, strings.TrimSpace(label))

	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "report"
	}
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}

package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/hotelrisk/riskadvisor/internal/bot"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long: `Serve starts the Telegram bot and polls for updates until
interrupted. Requires TELEGRAM_TOKEN and AIRTABLE_PAT in the environment.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, client, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	b, err := bot.New(cfg.Telegram, cfg.Output.Directory, p, client, logger)
	if err != nil {
		return err
	}

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Package cli wires the cobra command tree for the advisor.
package cli

import (
	"fmt"
	"os"

	"github.com/hotelrisk/riskadvisor/internal/llm"
	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/hotelrisk/riskadvisor/internal/pipeline"
	"github.com/hotelrisk/riskadvisor/internal/query"
	"github.com/hotelrisk/riskadvisor/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "riskadvisor",
	Short: "Risk Advisor - claims and sales queries for the hotel franchise practice",
	Long: `Risk Advisor answers free-text questions about the hotel franchise
practice's Sales and Consulting record systems.

A query names a client and optional filters, for example:

  riskadvisor query "Jasmin open greater than 25000"
  riskadvisor report "Ocean Partners closed property last 5 years"

Unrecognized words are treated as part of the client name, so multi-word
clients need no quoting inside the query text.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("riskadvisor v0.3.2")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.riskadvisor/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.riskadvisor")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match RISKADVISOR_*
	viper.SetEnvPrefix("RISKADVISOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the full configuration: defaults, config file, then
// environment. Secrets come only from their dedicated environment variables.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Airtable.Token = os.Getenv("AIRTABLE_PAT")
	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	if cfg.LLM.Provider == "openai" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) (*zap.Logger, error) {
	if cfg.Output.Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildPipeline assembles the shared query pipeline and store client from
// configuration. A misconfigured LLM provider degrades to no commentary.
func buildPipeline(cfg *model.Config, logger *zap.Logger) (*pipeline.Pipeline, *store.Client, error) {
	if cfg.Airtable.Token == "" {
		return nil, nil, fmt.Errorf("AIRTABLE_PAT environment variable not set")
	}

	vocab, err := query.NewVocabulary(cfg.Vocabulary)
	if err != nil {
		return nil, nil, fmt.Errorf("build vocabulary: %w", err)
	}

	client := store.NewClient(cfg.Airtable, cfg.HTTP, cfg.Cache)

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		logger.Warn("llm provider unavailable, commentary disabled", zap.Error(err))
		provider = nil
	}

	return pipeline.NewPipeline(client, vocab, llm.NewCommentator(provider), logger), client, nil
}

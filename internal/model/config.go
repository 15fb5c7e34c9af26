package model

import "time"

// Config is the full runtime configuration. Values are resolved by viper in
// the CLI layer: flags, then RISKADVISOR_* environment variables, then the
// config file, then these defaults.
type Config struct {
	Airtable   AirtableConfig   `yaml:"airtable" mapstructure:"airtable"`
	Telegram   TelegramConfig   `yaml:"telegram" mapstructure:"telegram"`
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Vocabulary VocabularyConfig `yaml:"vocabulary" mapstructure:"vocabulary"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// AirtableConfig identifies the Sales and Consulting bases and their tables.
// The personal access token is never read from the config file.
type AirtableConfig struct {
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	Token            string `yaml:"-" mapstructure:"-"` // from AIRTABLE_PAT
	SalesBaseID      string `yaml:"sales_base_id" mapstructure:"sales_base_id"`
	ConsultingBaseID string `yaml:"consulting_base_id" mapstructure:"consulting_base_id"`

	IncidentsTableID     string `yaml:"incidents_table_id" mapstructure:"incidents_table_id"`
	OpportunitiesTableID string `yaml:"opportunities_table_id" mapstructure:"opportunities_table_id"`
	TasksTableID         string `yaml:"tasks_table_id" mapstructure:"tasks_table_id"`
	TodoTableID          string `yaml:"todo_table_id" mapstructure:"todo_table_id"`

	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	MaxRecords        int     `yaml:"max_records" mapstructure:"max_records"`
}

// TelegramConfig configures the chat transport. The bot token is never read
// from the config file.
type TelegramConfig struct {
	Token          string `yaml:"-" mapstructure:"-"` // from TELEGRAM_TOKEN
	PollTimeout    int    `yaml:"poll_timeout" mapstructure:"poll_timeout"`
	MessageLimit   int    `yaml:"message_limit" mapstructure:"message_limit"`
	MaxChatResults int    `yaml:"max_chat_results" mapstructure:"max_chat_results"`
}

// HTTPConfig configures outbound HTTP behavior.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// CacheConfig controls the short-TTL memory cache for sales and task lookups.
// Claim fetches always bypass the cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// VocabularyConfig holds the recognized keyword vocabularies. Loaded once at
// startup and read-only thereafter; new categories and synonyms are added
// here, not in interpreter logic.
type VocabularyConfig struct {
	// Statuses maps a query word to a canonical claim status.
	Statuses map[string]string `yaml:"statuses" mapstructure:"statuses"`
	// Categories maps a query word or phrase to a canonical claim category.
	Categories map[string]string `yaml:"categories" mapstructure:"categories"`
	// Operators maps a comparison word or phrase to an operator name
	// (greater_than, less_than, equal_to).
	Operators map[string]string `yaml:"operators" mapstructure:"operators"`
}

// LLMConfig configures the optional executive commentary. Disabled unless a
// provider is set. The API key is never read from the config file.
type LLMConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // "openai" or ""
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"-" mapstructure:"-"` // from OPENAI_API_KEY
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
	Directory     string `yaml:"directory" mapstructure:"directory"`
}

// DefaultConfig returns the built-in defaults, including the complete default
// keyword vocabularies.
func DefaultConfig() *Config {
	return &Config{
		Airtable: AirtableConfig{
			BaseURL:           "https://api.airtable.com/v0",
			RequestsPerSecond: 5,
			MaxRecords:        100,
		},
		Telegram: TelegramConfig{
			PollTimeout:    30,
			MessageLimit:   4000,
			MaxChatResults: 10,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     2 * time.Minute,
		},
		Vocabulary: VocabularyConfig{
			Statuses: map[string]string{
				"open":   string(StatusOpen),
				"closed": string(StatusClosed),
			},
			Categories: map[string]string{
				"liability":         "Liability",
				"property":          "Property",
				"general liability": "General Liability",
				"auto":              "Auto",
				"workers comp":      "Workers Comp",
			},
			Operators: map[string]string{
				"greater than": string(OpGreaterThan),
				"more than":    string(OpGreaterThan),
				"above":        string(OpGreaterThan),
				"over":         string(OpGreaterThan),
				"exceeding":    string(OpGreaterThan),
				"less than":    string(OpLessThan),
				"below":        string(OpLessThan),
				"under":        string(OpLessThan),
				"equal to":     string(OpEqualTo),
				"exactly":      string(OpEqualTo),
			},
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 400,
			Timeout:   30 * time.Second,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			Directory:     ".",
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/selector"
	"call-insights-go/internal/types"
)

// EnvPrefix is prepended to every environment variable read by viper.
const EnvPrefix = "CALLINSIGHTS"

// Default values for configuration.
const (
	DefaultEnvironment    = "local"
	DefaultLogLevel       = "info"
	DefaultPort           = "8080"
	DefaultDatasetPath    = "final_output_for_streamlit.csv"
	DefaultAllowedOrigins = "http://localhost:5173"
	DefaultSelectionCount = 5
	DefaultFetchTimeout   = 30 * time.Second
)

// Config holds the validated runtime configuration.
type Config struct {
	Environment        string
	LogLevel           string
	Port               string
	DatasetPath        string
	AllowedOrigins     []string
	MinValuesRequired  int
	TopK               int
	SelectionMode      types.SelectionMode
	SelectionCount     int
	SelectionSeed      int64
	TopicField         types.TopicField
	IncludeEmptyTopics bool
	FetchTimeout       time.Duration
}

// RawInput holds the unvalidated values from file, env and flags.
// Viper unmarshals into this struct.
type RawInput struct {
	Environment        string        `mapstructure:"environment"`
	LogLevel           string        `mapstructure:"log_level"`
	Port               string        `mapstructure:"port"`
	DatasetPath        string        `mapstructure:"dataset_path"`
	AllowedOrigins     string        `mapstructure:"allowed_origins"`
	MinValuesRequired  int           `mapstructure:"min_values_required"`
	TopK               int           `mapstructure:"top_k"`
	SelectionMode      string        `mapstructure:"selection_mode"`
	SelectionCount     int           `mapstructure:"selection_count"`
	SelectionSeed      int64         `mapstructure:"selection_seed"`
	TopicField         string        `mapstructure:"topic_field"`
	IncludeEmptyTopics bool          `mapstructure:"include_empty_topics"`
	FetchTimeout       time.Duration `mapstructure:"fetch_timeout"`
}

// SetDefaults registers every key with its default so env overrides are picked up on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("dataset_path", DefaultDatasetPath)
	v.SetDefault("allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("min_values_required", aggregator.DefaultMinValuesRequired)
	v.SetDefault("top_k", 0)
	v.SetDefault("selection_mode", string(types.RecentMode))
	v.SetDefault("selection_count", DefaultSelectionCount)
	v.SetDefault("selection_seed", selector.DefaultSeed)
	v.SetDefault("topic_field", string(types.PrimaryTopic))
	v.SetDefault("include_empty_topics", true)
	v.SetDefault("fetch_timeout", DefaultFetchTimeout)
}

// NewViper prepares a viper instance reading .env, an optional YAML config
// file and CALLINSIGHTS_* environment variables. A missing default config
// file is not an error; a missing explicit one is.
func NewViper(configFile string) (*viper.Viper, error) {
	_ = godotenv.Load() // loads .env

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".callinsights")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load unmarshals v and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	input := &RawInput{}
	if err := v.Unmarshal(input); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg := &Config{}
	if err := ProcessAndValidate(cfg, input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProcessAndValidate parses and validates raw input into cfg.
func ProcessAndValidate(cfg *Config, input *RawInput) error {
	if input.MinValuesRequired < 1 {
		return fmt.Errorf("min_values_required must be at least 1 (received %d)", input.MinValuesRequired)
	}
	cfg.MinValuesRequired = input.MinValuesRequired

	if input.TopK < 0 {
		return fmt.Errorf("top_k cannot be negative (received %d)", input.TopK)
	}
	cfg.TopK = input.TopK

	mode, err := selector.ParseMode(strings.ToLower(strings.TrimSpace(input.SelectionMode)))
	if err != nil {
		return fmt.Errorf("selection_mode: %w", err)
	}
	cfg.SelectionMode = mode
	cfg.SelectionCount = input.SelectionCount
	cfg.SelectionSeed = input.SelectionSeed
	req := selector.Request{Count: cfg.SelectionCount, Mode: cfg.SelectionMode}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("selection_count: %w", err)
	}

	field, err := types.ParseTopicField(input.TopicField)
	if err != nil {
		return fmt.Errorf("topic_field: %w", err)
	}
	cfg.TopicField = field
	cfg.IncludeEmptyTopics = input.IncludeEmptyTopics

	if input.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive (received %s)", input.FetchTimeout)
	}
	cfg.FetchTimeout = input.FetchTimeout

	cfg.Environment = strings.ToLower(strings.TrimSpace(input.Environment))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	cfg.Port = strings.TrimSpace(input.Port)
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	cfg.DatasetPath = strings.TrimSpace(input.DatasetPath)
	if cfg.DatasetPath == "" {
		return fmt.Errorf("dataset_path is required")
	}

	cfg.AllowedOrigins = nil
	for _, origin := range strings.Split(input.AllowedOrigins, ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return nil
}

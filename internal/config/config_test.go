package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/types"
)

func validInput() *RawInput {
	return &RawInput{
		Environment:        "Local",
		LogLevel:           "INFO",
		Port:               "9000",
		DatasetPath:        "calls.csv",
		AllowedOrigins:     "http://a.test, http://b.test,",
		MinValuesRequired:  3,
		SelectionMode:      "Sample",
		SelectionCount:     10,
		SelectionSeed:      7,
		TopicField:         "secondary",
		IncludeEmptyTopics: true,
		FetchTimeout:       time.Second,
	}
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDatasetPath, cfg.DatasetPath)
	assert.Equal(t, []string{DefaultAllowedOrigins}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.MinValuesRequired)
	assert.Zero(t, cfg.TopK)
	assert.Equal(t, types.RecentMode, cfg.SelectionMode)
	assert.Equal(t, DefaultSelectionCount, cfg.SelectionCount)
	assert.Equal(t, int64(42), cfg.SelectionSeed)
	assert.Equal(t, types.PrimaryTopic, cfg.TopicField)
	assert.True(t, cfg.IncludeEmptyTopics)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
}

func TestNewViperEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CALLINSIGHTS_MIN_VALUES_REQUIRED", "5")
	t.Setenv("CALLINSIGHTS_SELECTION_MODE", "sample")
	t.Setenv("CALLINSIGHTS_SELECTION_COUNT", "15")
	t.Setenv("CALLINSIGHTS_DATASET_PATH", "https://example.com/calls.parquet")
	t.Setenv("CALLINSIGHTS_FETCH_TIMEOUT", "2m")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MinValuesRequired)
	assert.Equal(t, types.SampleMode, cfg.SelectionMode)
	assert.Equal(t, 15, cfg.SelectionCount)
	assert.Equal(t, "https://example.com/calls.parquet", cfg.DatasetPath)
	assert.Equal(t, 2*time.Minute, cfg.FetchTimeout)
}

func TestNewViperConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	p := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("top_k: 4\ntopic_field: secondary\nport: \"7000\"\n"), 0o644))

	v, err := NewViper(p)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.TopK)
	assert.Equal(t, types.SecondaryTopic, cfg.TopicField)
	assert.Equal(t, "7000", cfg.Port)

	_, err = NewViper(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestProcessAndValidate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, validInput()))
		assert.Equal(t, "local", cfg.Environment)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
		assert.Equal(t, types.SampleMode, cfg.SelectionMode)
		assert.Equal(t, types.SecondaryTopic, cfg.TopicField)
	})

	failures := map[string]func(*RawInput){
		"min values below one": func(in *RawInput) { in.MinValuesRequired = 0 },
		"negative top k":       func(in *RawInput) { in.TopK = -1 },
		"unknown mode":         func(in *RawInput) { in.SelectionMode = "newest" },
		"count not offered":    func(in *RawInput) { in.SelectionCount = 7 },
		"unknown topic field":  func(in *RawInput) { in.TopicField = "tertiary" },
		"non-positive timeout": func(in *RawInput) { in.FetchTimeout = 0 },
		"missing dataset path": func(in *RawInput) { in.DatasetPath = "  " },
	}
	for name, mutate := range failures {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

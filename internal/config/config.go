// Package config provides the configuration schema, loader, and validation
// for the zimu subtitle enrichment pipeline.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls log verbosity for the zimu CLI.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Duration wraps time.Duration so YAML configs can use either a Go duration
// string ("45s", "2m") or a bare number of seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// AsDuration returns d as a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Config is the root configuration structure for zimu.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is an optional host:port on which a Prometheus /metrics
	// endpoint is served for the duration of a run. Empty disables it.
	MetricsAddr string `yaml:"metrics_addr"`

	Enrich    EnrichConfig    `yaml:"enrich"`
	Frequency FrequencyConfig `yaml:"frequency"`
	LLM       LLMConfig       `yaml:"llm"`
}

// EnrichConfig holds settings for the subtitle enrichment run.
type EnrichConfig struct {
	// InputDir is the directory scanned for .srt and .txt sources.
	InputDir string `yaml:"input_dir"`

	// OutputDir receives one <media>.enriched.json artifact per source file.
	// Created on demand.
	OutputDir string `yaml:"output_dir"`

	// MaxLines caps processing to the first N cues of each file.
	// Zero means process all cues.
	MaxLines int `yaml:"max_lines"`
}

// FrequencyConfig holds settings for the word-frequency aggregation run.
type FrequencyConfig struct {
	// CorpusDir is the directory scanned for *.enriched.json artifacts.
	CorpusDir string `yaml:"corpus_dir"`

	// CacheDir receives word_frequency.json and word_scores.json,
	// overwritten wholesale on each run.
	CacheDir string `yaml:"cache_dir"`
}

// LLMConfig selects and configures the analysis backend.
type LLMConfig struct {
	// Provider selects the backend: "openai" uses the native OpenAI SDK,
	// any other recognised name ("deepseek", "ollama", "anthropic", …) goes
	// through the any-llm universal client.
	Provider string `yaml:"provider"`

	// Model is the model identifier (e.g., "gpt-4o-mini", "deepseek-chat").
	Model string `yaml:"model"`

	// APIKey authenticates against the provider. When empty, the provider's
	// standard environment variable is consulted (OPENAI_API_KEY,
	// DEEPSEEK_API_KEY, …).
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string `yaml:"base_url"`

	// Temperature controls sampling randomness. Lower values give more
	// consistent analyses.
	Temperature float64 `yaml:"temperature"`

	// Timeout bounds each analysis call. Expiry degrades that cue to an
	// empty analysis record; it never aborts the run.
	Timeout Duration `yaml:"timeout"`
}

// Default returns a Config populated with the defaults for a local run.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Enrich: EnrichConfig{
			InputDir:  "srts-to-enrich",
			OutputDir: "enriched-srts",
		},
		Frequency: FrequencyConfig{
			CorpusDir: "enriched-srts",
			CacheDir:  "cache",
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			Timeout:     Duration(45 * time.Second),
		},
	}
}

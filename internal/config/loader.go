package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists the LLM backend names the CLI knows how to
// construct. Used by [Validate] to warn about likely typos.
var ValidProviderNames = []string{
	"openai", "anthropic", "gemini", "ollama", "deepseek",
	"mistral", "groq", "llamacpp", "llamafile",
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Settings absent from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of the defaults and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Enrich.MaxLines < 0 {
		errs = append(errs, fmt.Errorf("enrich.max_lines %d must not be negative", cfg.Enrich.MaxLines))
	}
	if cfg.Enrich.InputDir == "" {
		errs = append(errs, errors.New("enrich.input_dir is required"))
	}
	if cfg.Enrich.OutputDir == "" {
		errs = append(errs, errors.New("enrich.output_dir is required"))
	}
	if cfg.Frequency.CorpusDir == "" {
		errs = append(errs, errors.New("frequency.corpus_dir is required"))
	}
	if cfg.Frequency.CacheDir == "" {
		errs = append(errs, errors.New("frequency.cache_dir is required"))
	}

	if cfg.LLM.Provider != "" {
		if !slices.Contains(ValidProviderNames, cfg.LLM.Provider) {
			slog.Warn("unknown llm provider name — may be a typo",
				"name", cfg.LLM.Provider,
				"known", ValidProviderNames,
			)
		}
		if cfg.LLM.Model == "" {
			errs = append(errs, errors.New("llm.model is required when llm.provider is set"))
		}
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature %.2f is out of range [0.0, 2.0]", cfg.LLM.Temperature))
	}
	if cfg.LLM.Timeout.AsDuration() <= 0 {
		errs = append(errs, fmt.Errorf("llm.timeout %s must be positive", cfg.LLM.Timeout.AsDuration()))
	}

	return errors.Join(errs...)
}

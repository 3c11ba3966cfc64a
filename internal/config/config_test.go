package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.LogLevel != LogInfo {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Enrich.InputDir == "" || cfg.Enrich.OutputDir == "" {
		t.Error("default enrich dirs are empty")
	}
	if cfg.LLM.Timeout.AsDuration() != 45*time.Second {
		t.Errorf("default timeout = %s, want 45s", cfg.LLM.Timeout.AsDuration())
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(Default()) = %v, want nil", err)
	}
}

func TestLoadFromReader_OverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(`
log_level: debug
enrich:
  input_dir: in
  output_dir: out
  max_lines: 10
llm:
  provider: deepseek
  model: deepseek-chat
  temperature: 0.5
  timeout: 30s
`))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.LogLevel != LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Enrich.InputDir != "in" || cfg.Enrich.MaxLines != 10 {
		t.Errorf("Enrich = %+v", cfg.Enrich)
	}
	if cfg.LLM.Provider != "deepseek" || cfg.LLM.Timeout.AsDuration() != 30*time.Second {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	// Untouched settings keep their defaults.
	if cfg.Frequency.CacheDir != "cache" {
		t.Errorf("Frequency.CacheDir = %q, want default", cfg.Frequency.CacheDir)
	}
}

func TestLoadFromReader_EmptyInputKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.LLM.Model != Default().LLM.Model {
		t.Errorf("Model = %q, want default", cfg.LLM.Model)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := LoadFromReader(strings.NewReader("no_such_setting: true\n"))
	if err == nil {
		t.Error("LoadFromReader() error = nil, want unknown-field error")
	}
}

func TestDuration_Forms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want time.Duration
	}{
		{"go string", "llm:\n  timeout: 90s\n", 90 * time.Second},
		{"bare seconds", "llm:\n  timeout: 45\n", 45 * time.Second},
		{"minutes", "llm:\n  timeout: 2m\n", 2 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadFromReader() error = %v", err)
			}
			if got := cfg.LLM.Timeout.AsDuration(); got != tt.want {
				t.Errorf("Timeout = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"negative max lines", func(c *Config) { c.Enrich.MaxLines = -1 }, "max_lines"},
		{"missing input dir", func(c *Config) { c.Enrich.InputDir = "" }, "input_dir"},
		{"missing model", func(c *Config) { c.LLM.Model = "" }, "llm.model"},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 3 }, "temperature"},
		{"zero timeout", func(c *Config) { c.LLM.Timeout = 0 }, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate_JoinsAllFailures(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.LogLevel = "verbose"
	cfg.Enrich.MaxLines = -1
	cfg.LLM.Temperature = 5

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"log_level", "max_lines", "temperature"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error missing %q: %q", want, err)
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/zimu/internal/analysis"
	"github.com/MrWong99/zimu/internal/config"
	"github.com/MrWong99/zimu/internal/enrich"
	"github.com/MrWong99/zimu/internal/observe"
	"github.com/MrWong99/zimu/internal/pinyin"
	"github.com/MrWong99/zimu/pkg/provider/llm"
	"github.com/MrWong99/zimu/pkg/provider/llm/anyllm"
	"github.com/MrWong99/zimu/pkg/provider/llm/openai"
)

func newEnrichCommand(cctx *commandContext) *cobra.Command {
	var maxLines int

	cmd := &cobra.Command{
		Use:   "enrich [file...]",
		Short: "Enrich subtitle files with translations, pinyin, and glosses",
		Long: `Enrich analyses each subtitle line with an LLM and writes one
<media>.enriched.json artifact per source file.

Without arguments every .srt and .txt file in the configured input directory
is processed. With file arguments only those files are processed; files that
fail are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-lines") {
				cfg.Enrich.MaxLines = maxLines
			}
			return runEnrich(cmd.Context(), cfg, args)
		},
	}

	cmd.Flags().IntVar(&maxLines, "max-lines", 0, "Process at most N cues per file (0 = all)")
	return cmd
}

func runEnrich(ctx context.Context, cfg *config.Config, args []string) error {
	provider, err := buildProvider(cfg.LLM)
	if err != nil {
		return err
	}

	analyzer := analysis.New(provider,
		analysis.WithTimeout(cfg.LLM.Timeout.AsDuration()),
		analysis.WithTemperature(cfg.LLM.Temperature),
	)

	enricher := enrich.New(analyzer, pinyin.New(),
		enrich.WithMaxLines(cfg.Enrich.MaxLines),
		enrich.WithProgress(newProgress()),
	)

	pipeline := func(ctx context.Context) error {
		if len(args) > 0 {
			for _, path := range args {
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := enricher.EnrichFile(ctx, path, cfg.Enrich.OutputDir); err != nil {
					slog.Warn("skipping file", "path", path, "err", err)
				}
			}
			return nil
		}

		runner := enrich.NewRunner(enricher, cfg.Enrich.InputDir, cfg.Enrich.OutputDir)
		sum, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		slog.Info("enrichment run complete",
			"processed", sum.Processed,
			"skipped", sum.Skipped,
			"collisions", sum.Collisions,
		)
		return nil
	}

	if cfg.MetricsAddr == "" {
		return pipeline(ctx)
	}
	return withMetricsServer(ctx, cfg.MetricsAddr, pipeline)
}

// buildProvider constructs the analysis backend selected by cfg. The bare
// "openai" name uses the native SDK; every other recognised name goes
// through the any-llm universal client.
func buildProvider(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		var opts []openai.Option
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		p, err := openai.New(apiKey, cfg.Model, opts...)
		if err != nil {
			return nil, fmt.Errorf("configure openai backend: %w", err)
		}
		return p, nil
	default:
		var opts []anyllmlib.Option
		if cfg.APIKey != "" {
			opts = append(opts, anyllmlib.WithAPIKey(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anyllmlib.WithBaseURL(cfg.BaseURL))
		}
		p, err := anyllm.New(cfg.Provider, cfg.Model, opts...)
		if err != nil {
			return nil, fmt.Errorf("configure %s backend: %w", cfg.Provider, err)
		}
		return p, nil
	}
}

// newProgress returns a per-cue progress callback rendering a terminal bar.
// A fresh bar is started whenever a new file begins (done == 1).
func newProgress() enrich.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(done, total int, preview string) {
		if done == 1 || bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
		if len(preview) > 40 {
			preview = preview[:40]
		}
		bar.Describe(preview)
		_ = bar.Set(done)
	}
}

// withMetricsServer serves Prometheus metrics on addr for the duration of fn.
func withMetricsServer(ctx context.Context, addr string, fn func(context.Context) error) error {
	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		return fmt.Errorf("init metrics provider: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			slog.Warn("metrics provider shutdown failed", "err", err)
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := fn(gctx)
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
		return err
	})
	return g.Wait()
}

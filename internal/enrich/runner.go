package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Summary reports what a directory run did.
type Summary struct {
	// Processed is the number of source files enriched and persisted.
	Processed int

	// Skipped counts files that vanished between the scan and processing,
	// or whose enrichment failed; each is reported, none aborts the run.
	Skipped int

	// Collisions counts distinct inputs that normalised to an output name
	// already produced earlier in the same run. The later file overwrites
	// the earlier output; the collision is reported, not resolved.
	Collisions int
}

// Runner processes every subtitle file in a directory, strictly one file at
// a time, in lexical order.
type Runner struct {
	enricher  *Enricher
	inputDir  string
	outputDir string
}

// NewRunner returns a Runner that enriches all .srt and .txt files found in
// inputDir into outputDir.
func NewRunner(enricher *Enricher, inputDir, outputDir string) *Runner {
	return &Runner{
		enricher:  enricher,
		inputDir:  inputDir,
		outputDir: outputDir,
	}
}

// Run scans the input directory and enriches each source file in turn.
// A missing input directory is the one fatal condition; anything going wrong
// with an individual file is reported and skipped. Run stops early only when
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	entries, err := os.ReadDir(r.inputDir)
	if err != nil {
		return sum, fmt.Errorf("enrich: read input dir %q: %w", r.inputDir, err)
	}

	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !isSource(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		srcPath := filepath.Join(r.inputDir, entry.Name())
		if _, err := os.Stat(srcPath); err != nil {
			slog.Warn("skipping missing file", "path", srcPath)
			sum.Skipped++
			continue
		}

		media := MediaNameFromPath(srcPath)
		if first, ok := seen[media]; ok {
			slog.Warn("output name collision — later file overwrites earlier output",
				"name", media,
				"first", first,
				"second", entry.Name(),
			)
			sum.Collisions++
		}
		seen[media] = entry.Name()

		slog.Info("processing", "media", media, "file", entry.Name())
		if _, err := r.enricher.EnrichFile(ctx, srcPath, r.outputDir); err != nil {
			slog.Error("enrichment failed", "file", entry.Name(), "err", err)
			sum.Skipped++
			continue
		}
		sum.Processed++
	}

	return sum, nil
}

// isSource reports whether name looks like a subtitle or plain-text source.
func isSource(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".srt") || strings.HasSuffix(lower, ".txt")
}

// Package enrich implements the per-file enrichment orchestration: it walks
// the cues of a subtitle file in order, obtains a structured analysis for
// each line, attaches pinyin readings, and persists the enriched record set.
//
// Processing is strictly sequential — cues within a file and files within a
// directory are never dispatched in parallel. The only shared state is the
// append-only output slice and the progress counters, both owned by the
// calling goroutine.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrWong99/zimu/internal/analysis"
	"github.com/MrWong99/zimu/internal/observe"
	"github.com/MrWong99/zimu/internal/subtitle"
)

// WordReading pairs a segmented word with its pinyin reading.
type WordReading struct {
	Word   string `json:"word"`
	Pinyin string `json:"pinyin"`
}

// Line is one enriched subtitle cue — the unit of output. Created once per
// cue and never mutated afterwards.
type Line struct {
	// Start and End are the cue offsets in seconds.
	Start float64 `json:"start"`
	End   float64 `json:"end"`

	// Text is the original source line.
	Text string `json:"text"`

	// Segmented lists the cue's words with their pinyin readings, in the
	// order the analysis produced them.
	Segmented []WordReading `json:"segmented"`

	// Translation is the natural-language translation of the line.
	Translation string `json:"translation"`

	// Explanation covers grammar and cultural notes for the line.
	Explanation string `json:"explanation"`

	// WordMeanings carries the word-by-word glosses from the analysis.
	WordMeanings []analysis.WordGloss `json:"word_meanings"`
}

// Analyzer is the bounded-time analysis call consumed by the orchestrator.
// *analysis.Analyzer satisfies it; tests substitute stubs.
type Analyzer interface {
	Analyze(ctx context.Context, cueText, mediaName string) (string, error)
}

// Transcriber converts a word to its pronunciation string. Deterministic,
// no failure mode. *pinyin.Annotator satisfies it.
type Transcriber interface {
	Transcribe(word string) string
}

// ProgressFunc receives one update after each processed cue: the number of
// cues done so far, the total that will be processed, and a preview of the
// segmented line.
type ProgressFunc func(done, total int, preview string)

// Option is a functional option for configuring an [Enricher].
type Option func(*Enricher)

// WithMaxLines caps processing to the first n cues of each file. Cues past
// the cap are silently skipped. Zero (the default) processes everything.
func WithMaxLines(n int) Option {
	return func(e *Enricher) {
		e.maxLines = n
	}
}

// WithProgress installs a per-cue progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Enricher) {
		e.progress = fn
	}
}

// WithMetrics routes pipeline counters and latencies to m instead of the
// package default.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Enricher) {
		e.metrics = m
	}
}

// Enricher orchestrates enrichment for one or more subtitle files. It holds
// no per-file state; the same instance may process many files sequentially.
type Enricher struct {
	analyzer Analyzer
	pinyin   Transcriber
	maxLines int
	progress ProgressFunc
	metrics  *observe.Metrics
}

// New returns an Enricher using the given analysis and transcription
// collaborators.
func New(analyzer Analyzer, transcriber Transcriber, opts ...Option) *Enricher {
	e := &Enricher{
		analyzer: analyzer,
		pinyin:   transcriber,
	}
	for _, o := range opts {
		o(e)
	}
	if e.metrics == nil {
		e.metrics = observe.DefaultMetrics()
	}
	return e
}

// EnrichCues processes cues strictly in order and returns one [Line] per
// processed cue. Analysis failures of any kind degrade the affected cue to
// an empty record — original text and timings are always preserved — and
// processing continues with the next cue.
func (e *Enricher) EnrichCues(ctx context.Context, cues []subtitle.Cue, mediaName string) []Line {
	total := len(cues)
	if e.maxLines > 0 && total > e.maxLines {
		cues = cues[:e.maxLines]
		total = e.maxLines
	}

	lines := make([]Line, 0, total)
	for i, cue := range cues {
		rec := e.analyzeCue(ctx, cue.Text, mediaName)

		segmented := make([]WordReading, 0, len(rec.Words))
		preview := make([]byte, 0, 32)
		for _, gloss := range rec.Words {
			segmented = append(segmented, WordReading{
				Word:   gloss.Word,
				Pinyin: e.pinyin.Transcribe(gloss.Word),
			})
			if len(preview) > 0 {
				preview = append(preview, " | "...)
			}
			preview = append(preview, gloss.Word...)
		}

		lines = append(lines, Line{
			Start:        cue.Start.Seconds(),
			End:          cue.End.Seconds(),
			Text:         cue.Text,
			Segmented:    segmented,
			Translation:  rec.Translation,
			Explanation:  rec.Explanation,
			WordMeanings: rec.Words,
		})

		e.metrics.RecordCue(ctx)
		if e.progress != nil {
			e.progress(i+1, total, string(preview))
		}
	}
	return lines
}

// analyzeCue runs the analysis call and sanitizer for one line, mapping
// every failure category to the empty record.
func (e *Enricher) analyzeCue(ctx context.Context, text, mediaName string) analysis.Record {
	started := time.Now()
	raw, err := e.analyzer.Analyze(ctx, text, mediaName)
	e.metrics.RecordAnalysisDuration(ctx, time.Since(started).Seconds())

	switch {
	case errors.Is(err, analysis.ErrTimeout):
		slog.Warn("analysis timed out", "line", text)
		e.metrics.RecordFailure(ctx, observe.FailureTimeout)
		return analysis.Record{Words: []analysis.WordGloss{}}
	case err != nil:
		slog.Warn("analysis call failed", "line", text, "err", err)
		e.metrics.RecordFailure(ctx, observe.FailureTransport)
		return analysis.Record{Words: []analysis.WordGloss{}}
	}

	rec, ok := analysis.Sanitize(raw)
	if !ok {
		slog.Warn("discarding malformed analysis response", "line", text, "raw", raw)
		e.metrics.RecordFailure(ctx, observe.FailureDecode)
	}
	return rec
}

// EnrichFile parses the subtitle file at srcPath, enriches every cue, and
// persists the result to outputDir as <media>.enriched.json. A file with
// zero cues still produces a persisted empty sequence. Returns the output
// path.
func (e *Enricher) EnrichFile(ctx context.Context, srcPath, outputDir string) (string, error) {
	cues, err := subtitle.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("enrich: %w", err)
	}

	media := MediaNameFromPath(srcPath)
	lines := e.EnrichCues(ctx, cues, media)

	outPath, err := writeArtifact(outputDir, media, lines)
	if err != nil {
		return "", err
	}
	e.metrics.RecordArtifact(ctx)
	slog.Info("enriched artifact written", "path", outPath, "lines", len(lines))
	return outPath, nil
}

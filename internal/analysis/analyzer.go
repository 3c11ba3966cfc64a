// Package analysis implements the per-line language-model analysis stage of
// the enrichment pipeline.
//
// The [Analyzer] sends one subtitle line to an [llm.Provider] under a hard
// deadline and returns the model's raw text. The companion [Sanitize]
// repairs and decodes that text into an [Record]. Both halves degrade
// gracefully: a timeout, transport failure, or garbled response must never
// abort the surrounding run — the cue simply receives an empty record.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrWong99/zimu/pkg/provider/llm"
)

const (
	defaultTemperature = 0.3
	defaultTimeout     = 45 * time.Second
)

// Failure classification for a single analysis call. Callers branch on these
// with errors.Is; both degrade identically, the distinction is diagnostic.
var (
	// ErrTimeout reports that the deadline expired before the backend
	// returned. The underlying request is cancelled, not leaked.
	ErrTimeout = errors.New("analysis: backend call timed out")

	// ErrTransport reports a connection failure, non-success status, or any
	// other backend error.
	ErrTransport = errors.New("analysis: backend call failed")
)

// Option is a functional option for configuring an [Analyzer].
type Option func(*Analyzer)

// WithTimeout sets the per-call deadline. Default: 45s.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// WithTemperature sets the sampling temperature. Lower values produce more
// consistent analyses. Default: 0.3.
func WithTemperature(temp float64) Option {
	return func(a *Analyzer) {
		a.temperature = temp
	}
}

// Analyzer performs bounded-time analysis calls against an [llm.Provider].
// It is safe for concurrent use. Each Analyzer carries its own timeout and
// temperature, so independently configured instances can coexist.
type Analyzer struct {
	llm         llm.Provider
	temperature float64
	timeout     time.Duration
}

// New returns a new [Analyzer] backed by the given [llm.Provider].
func New(provider llm.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		llm:         provider,
		temperature: defaultTemperature,
		timeout:     defaultTimeout,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze builds the prompt for cueText and performs exactly one completion
// call bounded by the configured timeout. The deadline is enforced with a
// child context handed to the provider, so expiry cancels the in-flight
// request instead of abandoning a background worker.
//
// On success the raw response text is returned with surrounding whitespace
// trimmed; no JSON parsing happens here. On failure the error matches
// [ErrTimeout] or [ErrTransport]; nothing else escapes this boundary.
func (a *Analyzer) Analyze(ctx context.Context, cueText, mediaName string) (string, error) {
	prompt := BuildPrompt(cueText, mediaName)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.llm.Complete(callCtx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		Temperature: a.temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: empty response", ErrTransport)
	}

	return strings.TrimSpace(resp.Content), nil
}

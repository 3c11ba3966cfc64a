// Package observe provides observability primitives for the zimu pipeline:
// OpenTelemetry metrics and a Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter is wired via [InitProvider] so runs can expose a standard /metrics
// endpoint. A package-level default [Metrics] instance ([DefaultMetrics]) is
// provided for convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all zimu metrics.
const meterName = "github.com/MrWong99/zimu"

// Failure kinds recorded on the analysis failure counter.
const (
	FailureTimeout   = "timeout"
	FailureTransport = "transport"
	FailureDecode    = "decode"
)

// Metrics holds all OpenTelemetry metric instruments for the pipeline.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// AnalysisDuration tracks the latency of one bounded analysis call.
	AnalysisDuration metric.Float64Histogram

	// CuesProcessed counts cues that completed the enrichment loop,
	// degraded or not.
	CuesProcessed metric.Int64Counter

	// AnalysisFailures counts degraded cues. Use with attribute:
	//   attribute.String("kind", FailureTimeout|FailureTransport|FailureDecode)
	AnalysisFailures metric.Int64Counter

	// ArtifactsWritten counts enriched output files persisted.
	ArtifactsWritten metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// remote LLM completion latencies.
var latencyBuckets = []float64{
	0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 45, 60,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AnalysisDuration, err = m.Float64Histogram("zimu.analysis.duration",
		metric.WithDescription("Latency of one bounded analysis call."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CuesProcessed, err = m.Int64Counter("zimu.cues.processed",
		metric.WithDescription("Total cues run through the enrichment loop."),
	); err != nil {
		return nil, err
	}
	if met.AnalysisFailures, err = m.Int64Counter("zimu.analysis.failures",
		metric.WithDescription("Cues degraded to an empty analysis record, by failure kind."),
	); err != nil {
		return nil, err
	}
	if met.ArtifactsWritten, err = m.Int64Counter("zimu.artifacts.written",
		metric.WithDescription("Enriched output artifacts persisted."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordCue records one completed cue.
func (m *Metrics) RecordCue(ctx context.Context) {
	m.CuesProcessed.Add(ctx, 1)
}

// RecordFailure records a degraded cue with the given failure kind.
func (m *Metrics) RecordFailure(ctx context.Context, kind string) {
	m.AnalysisFailures.Add(ctx, 1,
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}

// RecordArtifact records one persisted output artifact.
func (m *Metrics) RecordArtifact(ctx context.Context) {
	m.ArtifactsWritten.Add(ctx, 1)
}

// RecordAnalysisDuration records the latency of one analysis call in seconds.
func (m *Metrics) RecordAnalysisDuration(ctx context.Context, seconds float64) {
	m.AnalysisDuration.Record(ctx, seconds)
}

package observe

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewMetrics_RecordsThroughProvider(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	ctx := context.Background()
	m.RecordCue(ctx)
	m.RecordCue(ctx)
	m.RecordFailure(ctx, FailureTimeout)
	m.RecordArtifact(ctx)
	m.RecordAnalysisDuration(ctx, 1.5)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	found := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, met := range scope.Metrics {
			found[met.Name] = true
			if met.Name == "zimu.cues.processed" {
				sum, ok := met.Data.(metricdata.Sum[int64])
				if !ok {
					t.Fatalf("cues.processed data type = %T", met.Data)
				}
				if got := sum.DataPoints[0].Value; got != 2 {
					t.Errorf("cues.processed = %d, want 2", got)
				}
			}
		}
	}
	for _, name := range []string{
		"zimu.cues.processed",
		"zimu.analysis.failures",
		"zimu.artifacts.written",
		"zimu.analysis.duration",
	} {
		if !found[name] {
			t.Errorf("instrument %q not collected", name)
		}
	}
}

func TestDefaultMetrics_Stable(t *testing.T) {
	t.Parallel()

	if DefaultMetrics() != DefaultMetrics() {
		t.Error("DefaultMetrics() returned different instances")
	}
}

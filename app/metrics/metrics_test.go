package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()

	if m.Builds == nil || m.BuildDuration == nil || m.FeedItems == nil || m.CalendarEvents == nil {
		t.Fatal("Expected all metrics to be initialized")
	}

	// Independent instances do not collide on a registry
	registry := prometheus.NewRegistry()
	if err := registry.Register(m.Builds); err != nil {
		t.Fatalf("Expected registration to succeed, got: %v", err)
	}
	if err := prometheus.NewRegistry().Register(NewMetricsForTesting().Builds); err != nil {
		t.Fatalf("Expected a second instance to register, got: %v", err)
	}
}

func TestBuildsCounter(t *testing.T) {
	m := NewMetricsForTesting()

	m.Builds.WithLabelValues(OutcomeSuccess).Inc()
	m.Builds.WithLabelValues(OutcomeSuccess).Inc()
	m.Builds.WithLabelValues(OutcomeFailure).Inc()

	var metric dto.Metric
	if err := m.Builds.WithLabelValues(OutcomeSuccess).Write(&metric); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("Expected 2 successful builds, got %v", got)
	}
}

func TestGauges(t *testing.T) {
	m := NewMetricsForTesting()
	m.CalendarEvents.Set(7)

	var metric dto.Metric
	if err := m.CalendarEvents.Write(&metric); err != nil {
		t.Fatalf("Failed to read gauge: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 7 {
		t.Errorf("Expected 7 events, got %v", got)
	}
}

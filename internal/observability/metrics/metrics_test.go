package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveSubmission("success")
	m.ObserveSubmission("success")
	m.ObserveSubmission("error")

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("expected 2 successful submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 failed submission, got %v", got)
	}
}

func TestObserveRegionDetection(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveRegionDetection("MY", "geoip")
	m.ObserveRegionDetection("INT", "default")

	if got := testutil.ToFloat64(m.regionTotal.WithLabelValues("MY", "geoip")); got != 1 {
		t.Errorf("expected 1 MY geoip detection, got %v", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveSubmission("success")
	m.ObserveContact("error")
	m.ObserveRegionDetection("INT", "default")
	m.ObserveGeoIPLatency(0.1)
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking funnel.
type BookingMetrics struct {
	submissionsTotal *prometheus.CounterVec
	contactTotal     *prometheus.CounterVec
	regionTotal      *prometheus.CounterVec
	geoLatency       prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Total booking wizard submissions",
		}, []string{"status"}),
		contactTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "contact",
			Name:      "messages_total",
			Help:      "Total contact form messages",
		}, []string{"status"}),
		regionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio",
			Subsystem: "region",
			Name:      "detections_total",
			Help:      "Region detection outcomes by resolving layer",
		}, []string{"region", "layer"}),
		geoLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "studio",
			Subsystem: "region",
			Name:      "geoip_latency_seconds",
			Help:      "Latency of the IP geolocation lookup",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.contactTotal, m.regionTotal, m.geoLatency)
	return m
}

func (m *BookingMetrics) ObserveSubmission(status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveContact(status string) {
	if m == nil {
		return
	}
	m.contactTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveRegionDetection(region, layer string) {
	if m == nil {
		return
	}
	m.regionTotal.WithLabelValues(region, layer).Inc()
}

func (m *BookingMetrics) ObserveGeoIPLatency(seconds float64) {
	if m == nil {
		return
	}
	m.geoLatency.Observe(seconds)
}

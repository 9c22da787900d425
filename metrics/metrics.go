package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ChatMetrics exposes counters and histograms for the chat and content endpoints.
// A nil *ChatMetrics is valid and records nothing.
type ChatMetrics struct {
	eventsTotal  *prometheus.CounterVec
	contactSends *prometheus.CounterVec
	contentFetch *prometheus.HistogramVec
	sessionsLive prometheus.Gauge
}

// Result labels
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "chat",
			Name:      "events_total",
			Help:      "Total conversation events by type and result",
		}, []string{"event", "result"}),
		contactSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "contact_sends_total",
			Help:      "Total contact form deliveries by result",
		}, []string{"result"}),
		contentFetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "content_fetch_seconds",
			Help:      "Latency of article and project fetches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		sessionsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "chat",
			Name:      "sessions",
			Help:      "Number of live chat sessions",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.eventsTotal, m.contactSends, m.contentFetch, m.sessionsLive)
	return m
}

func (m *ChatMetrics) ObserveEvent(event, result string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(event, result).Inc()
}

func (m *ChatMetrics) ObserveContactSend(err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.contactSends.WithLabelValues(result).Inc()
}

func (m *ChatMetrics) ObserveContentFetch(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.contentFetch.WithLabelValues(source).Observe(d.Seconds())
}

func (m *ChatMetrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsLive.Set(float64(n))
}

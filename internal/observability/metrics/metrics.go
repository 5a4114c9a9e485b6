package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "eventpulse"

// Metrics exposes counters/histograms for the chat, image and SMS flows.
type Metrics struct {
	chatReplies      *prometheus.CounterVec
	imageTotal       *prometheus.CounterVec
	imageLatency     *prometheus.HistogramVec
	smsOutboundTotal *prometheus.CounterVec
}

// New registers the collectors on reg (the default registerer when nil).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Chat replies by source (remote or fallback)",
		}, []string{"source"}),
		imageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "image",
			Name:      "generations_total",
			Help:      "Image generation requests by outcome",
		}, []string{"status"}),
		imageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "image",
			Name:      "generation_seconds",
			Help:      "Latency of upstream image generation",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90, 120},
		}, []string{"status"}),
		smsOutboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sms",
			Name:      "outbound_total",
			Help:      "Outbound SMS attempts by provider and outcome",
		}, []string{"provider", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatReplies, m.imageTotal, m.imageLatency, m.smsOutboundTotal)
	return m
}

func (m *Metrics) ObserveChatReply(source string) {
	if m == nil {
		return
	}
	m.chatReplies.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveImage(status string, seconds float64) {
	if m == nil {
		return
	}
	m.imageTotal.WithLabelValues(status).Inc()
	m.imageLatency.WithLabelValues(status).Observe(seconds)
}

func (m *Metrics) ObserveSMS(provider, status string) {
	if m == nil {
		return
	}
	if provider == "" {
		provider = "none"
	}
	m.smsOutboundTotal.WithLabelValues(provider, status).Inc()
}
